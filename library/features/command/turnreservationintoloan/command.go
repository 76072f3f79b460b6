package turnreservationintoloan

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "TurnReservationIntoLoan"
)

// Command represents the collection of a held copy. LoanID names the loan to be started.
type Command struct {
	ReservationID core.ReservationIDString
	LoanID        core.LoanIDString
	OccurredAt    core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(reservationID core.ReservationIDString, loanID core.LoanIDString, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		LoanID:        loanID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
