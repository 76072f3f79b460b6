package core

import (
	"time"
)

const BookRemovedFromCatalogEventType = "BookRemovedFromCatalog"

// BookRemovedFromCatalog frees the ISBN and the edition id for a new catalog entry.
type BookRemovedFromCatalog struct {
	ISBN       ISBNString
	EditionID  string
	OccurredAt OccurredAt
}

func BuildBookRemovedFromCatalog(book Book, occurredAt time.Time) BookRemovedFromCatalog {
	return BookRemovedFromCatalog{
		ISBN:       book.ISBN,
		EditionID:  book.EditionID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookRemovedFromCatalog) IsEventType() string {
	return BookRemovedFromCatalogEventType
}

func (e BookRemovedFromCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookRemovedFromCatalog) IsErrorEvent() bool {
	return false
}
