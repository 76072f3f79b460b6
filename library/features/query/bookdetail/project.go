package bookdetail

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Project builds the detail view of one catalog entry.
//
// Query Logic:
//
//	GIVEN: A book identified by ISBN
//	WHEN: BookDetail query is executed
//	THEN: the book, its copies with their status, the waiting list length and the next available date are returned
//	AND: the other catalog entries of the same work are listed, newest first
//	ERROR: core.ErrBookNotInCatalog if the book is not in the catalog
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) (BookDetail, error) {
	c := core.ProjectCirculation(history)

	book, ok := c.Book(query.ISBN)
	if !ok {
		return BookDetail{}, core.ErrBookNotInCatalog
	}

	copies := make([]CopyInfo, 0)
	for _, bookCopy := range c.Copies(book.ISBN) {
		status, _ := c.CopyStatus(bookCopy.AccessionCode)
		copies = append(copies, CopyInfo{AccessionCode: bookCopy.AccessionCode, Status: status.String()})
	}

	waiting := 0
	for _, reservation := range c.ReservationsFor(book.ISBN) {
		if !reservation.HasCopy() {
			waiting++
		}
	}

	return BookDetail{
		Book:              book,
		Authors:           book.AuthorsNameString(),
		Available:         c.NumCopiesAvailable(book.ISBN),
		Total:             len(copies),
		Copies:            copies,
		Waiting:           waiting,
		NextAvailableDate: c.NextAvailableDate(book.ISBN),
		OtherEditions:     otherEditionsOf(book, c.Books()),
		SequenceNumber:    maxSequenceNumber,
	}, nil
}

func otherEditionsOf(book core.Book, catalog []core.Book) []Edition {
	editions := make([]Edition, 0)
	if book.WorkID == "" {
		return editions
	}

	for _, candidate := range catalog {
		if candidate.WorkID != book.WorkID || candidate.ISBN == book.ISBN {
			continue
		}

		editions = append(editions, Edition{
			ISBN:        candidate.ISBN,
			EditionID:   candidate.EditionID,
			Title:       candidate.Title,
			PublishedOn: candidate.PublishedOn,
		})
	}

	return editions
}

// BuildEventFilter reads the whole catalog for sibling editions, but copies, loans and reservations
// of the requested ISBN only.
func BuildEventFilter(isbn core.ISBNString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookRemovedFromCatalogEventType,
		).
		OrMatching().
		AnyEventTypeOf(
			core.BookFeatureChangedEventType,
			core.BookCopyAddedToCirculationEventType,
			core.BookCopyRemovedFromCirculationEventType,
			core.LoanStartedEventType,
			core.LoanRenewedEventType,
			core.LoanClosedEventType,
			core.ReservationPlacedEventType,
			core.ReservationCopyAssignedEventType,
			core.ReservationCancelledEventType,
			core.ReservationTurnedIntoLoanEventType,
		).
		AndAnyPredicateOf(eventstore.P("ISBN", isbn)).
		OrMatching().
		AnyEventTypeOf(core.UserPolicyChangedEventType).
		Finalize()
}
