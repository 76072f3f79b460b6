package markreservationoffshelves

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "MarkReservationOffShelves"
)

type Command struct {
	ReservationID core.ReservationIDString
	OffShelves    bool
	OccurredAt    core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(reservationID core.ReservationIDString, offShelves bool, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		OffShelves:    offShelves,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
