package core

import (
	"time"
)

const BookCopyRemovedFromCirculationEventType = "BookCopyRemovedFromCirculation"

type BookCopyRemovedFromCirculation struct {
	ISBN          ISBNString
	AccessionCode AccessionCodeString
	OccurredAt    OccurredAt
}

func BuildBookCopyRemovedFromCirculation(isbn ISBNString, accessionCode AccessionCodeString, occurredAt time.Time) BookCopyRemovedFromCirculation {
	return BookCopyRemovedFromCirculation{
		ISBN:          isbn,
		AccessionCode: accessionCode,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e BookCopyRemovedFromCirculation) IsEventType() string {
	return BookCopyRemovedFromCirculationEventType
}

func (e BookCopyRemovedFromCirculation) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookCopyRemovedFromCirculation) IsErrorEvent() bool {
	return false
}
