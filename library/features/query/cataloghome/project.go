package cataloghome

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Project builds the home listing from the catalog events.
//
// Query Logic:
//
//	GIVEN: The catalog history
//	WHEN: CatalogHome query is executed
//	THEN: all featured books are returned, newest first
//	AND: the NewestLimit most recently added books are returned, featured or not
//	EXCLUDES: books removed from the catalog
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) CatalogHome {
	books := core.ProjectCirculation(history).Books()

	featured := make([]BookSummary, 0)
	newest := make([]BookSummary, 0, min(len(books), query.NewestLimit))

	for i, book := range books {
		if book.Featured {
			featured = append(featured, summaryOf(book))
		}

		if i < query.NewestLimit {
			newest = append(newest, summaryOf(book))
		}
	}

	return CatalogHome{
		Featured:       featured,
		Newest:         newest,
		SequenceNumber: maxSequenceNumber,
	}
}

func summaryOf(book core.Book) BookSummary {
	return BookSummary{
		ISBN:     book.ISBN,
		Title:    book.Title,
		Authors:  book.AuthorsNameString(),
		CoverURL: book.CoverURL,
		AddedAt:  book.AddedAt,
	}
}

func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookFeatureChangedEventType,
			core.BookRemovedFromCatalogEventType,
		).
		Finalize()
}
