package core

import (
	"time"
)

const BookFeatureChangedEventType = "BookFeatureChanged"

// BookFeatureChanged toggles whether a book is shown on the catalog home.
type BookFeatureChanged struct {
	ISBN       ISBNString
	Featured   bool
	OccurredAt OccurredAt
}

func BuildBookFeatureChanged(isbn ISBNString, featured bool, occurredAt time.Time) BookFeatureChanged {
	return BookFeatureChanged{
		ISBN:       isbn,
		Featured:   featured,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookFeatureChanged) IsEventType() string {
	return BookFeatureChangedEventType
}

func (e BookFeatureChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookFeatureChanged) IsErrorEvent() bool {
	return false
}
