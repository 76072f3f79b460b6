package removebookcopy

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "RemoveBookCopy"
)

type Command struct {
	AccessionCode core.AccessionCodeString
	OccurredAt    core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(accessionCode core.AccessionCodeString, occurredAt time.Time) Command {
	if code, err := core.NormalizeAccessionCode(accessionCode); err == nil {
		accessionCode = code
	}

	return Command{
		AccessionCode: accessionCode,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
