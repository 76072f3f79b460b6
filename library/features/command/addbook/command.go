package addbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const (
	commandType = "AddBook"
)

type Command struct {
	Book       core.Book
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

// BuildCommand normalizes the ISBN where possible. Decide refuses what is still invalid.
func BuildCommand(book core.Book, occurredAt time.Time) Command {
	book.ISBN = core.CanonicalISBN(book.ISBN)

	return Command{
		Book:       book,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
