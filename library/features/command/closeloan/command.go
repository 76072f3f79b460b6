package closeloan

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "CloseLoan"
)

// Command represents the return of a loaned copy.
type Command struct {
	LoanID     core.LoanIDString
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(loanID core.LoanIDString, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
