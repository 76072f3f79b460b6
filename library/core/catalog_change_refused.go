package core

import (
	"time"
)

const CatalogChangeRefusedEventType = "CatalogChangeRefused"

// CatalogChangeRefused records a refused change to books or copies. AccessionCode is empty for book changes.
type CatalogChangeRefused struct {
	ISBN          ISBNString
	AccessionCode AccessionCodeString
	FailureInfo   string
	OccurredAt    OccurredAt
}

func BuildCatalogChangeRefused(isbn ISBNString, accessionCode AccessionCodeString, failureInfo string, occurredAt time.Time) CatalogChangeRefused {
	return CatalogChangeRefused{
		ISBN:          isbn,
		AccessionCode: accessionCode,
		FailureInfo:   failureInfo,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e CatalogChangeRefused) IsEventType() string {
	return CatalogChangeRefusedEventType
}

func (e CatalogChangeRefused) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e CatalogChangeRefused) IsErrorEvent() bool {
	return true
}
