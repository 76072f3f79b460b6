package assigncopy

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "AssignCopy"
)

// Command represents the intent to give a reservation a copy.
// An empty ExplicitCopy means the first available copy of the title.
type Command struct {
	ReservationID core.ReservationIDString
	ExplicitCopy  core.AccessionCodeString
	Notify        bool
	OccurredAt    core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(
	reservationID core.ReservationIDString,
	explicitCopy core.AccessionCodeString,
	notify bool,
	occurredAt time.Time,
) Command {

	return Command{
		ReservationID: reservationID,
		ExplicitCopy:  explicitCopy,
		Notify:        notify,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
