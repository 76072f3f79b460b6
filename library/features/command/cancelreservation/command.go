package cancelreservation

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "CancelReservation"
)

type Command struct {
	ReservationID core.ReservationIDString
	OccurredAt    core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(reservationID core.ReservationIDString, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
