package removebook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "RemoveBook"
)

type Command struct {
	ISBN       core.ISBNString
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(isbn core.ISBNString, occurredAt time.Time) Command {
	return Command{
		ISBN:       core.CanonicalISBN(isbn),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
