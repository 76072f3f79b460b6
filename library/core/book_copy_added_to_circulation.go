package core

import (
	"time"
)

const BookCopyAddedToCirculationEventType = "BookCopyAddedToCirculation"

// BookCopyAddedToCirculation puts a new physical copy on the shelves.
type BookCopyAddedToCirculation struct {
	ISBN          ISBNString
	AccessionCode AccessionCodeString
	OccurredAt    OccurredAt
}

func BuildBookCopyAddedToCirculation(isbn ISBNString, accessionCode AccessionCodeString, occurredAt time.Time) BookCopyAddedToCirculation {
	return BookCopyAddedToCirculation{
		ISBN:          isbn,
		AccessionCode: accessionCode,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e BookCopyAddedToCirculation) IsEventType() string {
	return BookCopyAddedToCirculationEventType
}

func (e BookCopyAddedToCirculation) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookCopyAddedToCirculation) IsErrorEvent() bool {
	return false
}
