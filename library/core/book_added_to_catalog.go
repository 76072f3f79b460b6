package core

import (
	"time"
)

const BookAddedToCatalogEventType = "BookAddedToCatalog"

// BookAddedToCatalog adds one edition. PublishedOn is a "2006-01-02" date or empty.
type BookAddedToCatalog struct {
	ISBN        ISBNString
	EditionID   string
	WorkID      string
	Title       string
	Authors     []Author
	Description string
	CoverURL    string
	PublishedOn string
	Featured    bool
	OccurredAt  OccurredAt
}

func BuildBookAddedToCatalog(book Book, occurredAt time.Time) BookAddedToCatalog {
	publishedOn := ""
	if book.PublishedOn != nil {
		publishedOn = book.PublishedOn.Format(time.DateOnly)
	}

	return BookAddedToCatalog{
		ISBN:        book.ISBN,
		EditionID:   book.EditionID,
		WorkID:      book.WorkID,
		Title:       book.Title,
		Authors:     book.Authors,
		Description: book.Description,
		CoverURL:    book.CoverURL,
		PublishedOn: publishedOn,
		Featured:    book.Featured,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e BookAddedToCatalog) IsEventType() string {
	return BookAddedToCatalogEventType
}

func (e BookAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookAddedToCatalog) IsErrorEvent() bool {
	return false
}

// Book rebuilds the catalog entry. An unparsable PublishedOn is treated as unknown.
func (e BookAddedToCatalog) Book() Book {
	book := Book{
		ISBN:        e.ISBN,
		EditionID:   e.EditionID,
		WorkID:      e.WorkID,
		Title:       e.Title,
		Authors:     e.Authors,
		Description: e.Description,
		CoverURL:    e.CoverURL,
		Featured:    e.Featured,
		AddedAt:     e.OccurredAt,
	}

	if publishedOn, err := time.Parse(time.DateOnly, e.PublishedOn); err == nil {
		book.PublishedOn = &publishedOn
	}

	return book
}
