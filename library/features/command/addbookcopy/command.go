package addbookcopy

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "AddBookCopy"
)

type Command struct {
	ISBN          core.ISBNString
	AccessionCode core.AccessionCodeString
	OccurredAt    core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

// BuildCommand normalizes the ISBN and the accession code where possible. Decide refuses what is still invalid.
func BuildCommand(isbn core.ISBNString, accessionCode string, occurredAt time.Time) Command {
	if code, err := core.NormalizeAccessionCode(accessionCode); err == nil {
		accessionCode = code
	}

	return Command{
		ISBN:          core.CanonicalISBN(isbn),
		AccessionCode: accessionCode,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
