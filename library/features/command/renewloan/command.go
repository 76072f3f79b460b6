package renewloan

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "RenewLoan"
)

type Command struct {
	LoanID     core.LoanIDString
	Force      bool
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(loanID core.LoanIDString, force bool, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		Force:      force,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
