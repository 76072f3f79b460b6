package createloan

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "CreateLoan"
)

// Command represents the intent to lend a copy to a user.
//
// AllowIgnoreUnavailable lends a copy even though it is held for a reservation. A copy that is
// already on loan is refused regardless.
type Command struct {
	LoanID                 core.LoanIDString
	UserID                 core.UserIDString
	AccessionCode          core.AccessionCodeString
	AllowIgnoreUnavailable bool
	OccurredAt             core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(
	loanID core.LoanIDString,
	userID core.UserIDString,
	accessionCode core.AccessionCodeString,
	allowIgnoreUnavailable bool,
	occurredAt time.Time,
) Command {

	return Command{
		LoanID:                 loanID,
		UserID:                 userID,
		AccessionCode:          accessionCode,
		AllowIgnoreUnavailable: allowIgnoreUnavailable,
		OccurredAt:             core.ToOccurredAt(occurredAt),
	}
}
