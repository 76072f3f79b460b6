package createreservation

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "CreateReservation"
)

type Command struct {
	ReservationID core.ReservationIDString
	UserID        core.UserIDString
	ISBN          core.ISBNString
	OccurredAt    core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(
	reservationID core.ReservationIDString,
	userID core.UserIDString,
	isbn core.ISBNString,
	occurredAt time.Time,
) Command {

	return Command{
		ReservationID: reservationID,
		UserID:        userID,
		ISBN:          core.CanonicalISBN(isbn),
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
