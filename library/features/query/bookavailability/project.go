package bookavailability

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Project computes the availability of a title.
//
// Query Logic:
//
//	GIVEN: A title with ISBN
//	WHEN: BookAvailability query is executed
//	THEN: the number of free copies and of copies in circulation is returned
//	THEN: NextAvailableDate is the earliest due date or collection expiry if no copy is free
//	EXCLUDES: copies removed from circulation
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) Availability {
	c := core.ProjectCirculation(history)
	book, inCatalog := c.Book(query.ISBN)
	available := c.NumCopiesAvailable(query.ISBN)

	return Availability{
		ISBN:              query.ISBN,
		Title:             book.Title,
		InCatalog:         inCatalog,
		Available:         available,
		Total:             len(c.Copies(query.ISBN)),
		ReadyNow:          available > 0,
		NextAvailableDate: c.NextAvailableDate(query.ISBN),
		SequenceNumber:    maxSequenceNumber,
	}
}

// BuildEventFilter selects everything that decides about the copies of the title. Policy changes
// move due dates and carry no ISBN, so they are read for all users.
func BuildEventFilter(isbn core.ISBNString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookRemovedFromCatalogEventType,
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
