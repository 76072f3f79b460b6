package removebook

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Decide removes a book from the catalog.
//
// Business Rules:
//
//	GIVEN: A book in the catalog without copies in circulation and without active reservations
//	WHEN: RemoveBook command is received
//	THEN: BookRemovedFromCatalog is generated
//	ERROR: ErrBookNotInCatalog if the book was never added
//	ERROR: ErrBookHasCopies if copies are still in circulation
//	ERROR: ErrBookHasReservations if reservations are still active
//	IDEMPOTENCY: If the book was already removed, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	refuse := func(err error) core.DecisionResult {
		return core.ErrorDecision(core.BuildCatalogChangeRefused(command.ISBN, "", err.Error(), command.OccurredAt), err)
	}

	c := core.ProjectCirculation(history)

	book, ok := c.Book(command.ISBN)
	if !ok {
		if wasRemoved(history) {
			return core.IdempotentDecision()
		}

		return refuse(core.ErrBookNotInCatalog)
	}

	if len(c.Copies(command.ISBN)) > 0 {
		return refuse(core.ErrBookHasCopies)
	}

	if len(c.ReservationsFor(command.ISBN)) > 0 {
		return refuse(core.ErrBookHasReservations)
	}

	return core.SuccessDecision(core.BuildBookRemovedFromCatalog(book, command.OccurredAt))
}

func wasRemoved(history core.DomainEvents) bool {
	for _, event := range history {
		if _, ok := event.(core.BookRemovedFromCatalog); ok {
			return true
		}
	}

	return false
}

// BuildEventFilter creates the filter for the catalog entry, copies and reservations of the title.
func BuildEventFilter(isbn core.ISBNString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookRemovedFromCatalogEventType,
			core.BookCopyAddedToCirculationEventType,
			core.BookCopyRemovedFromCirculationEventType,
			core.ReservationPlacedEventType,
			core.ReservationCancelledEventType,
			core.ReservationTurnedIntoLoanEventType,
		).
		AndAnyPredicateOf(eventstore.P("ISBN", isbn)).
		Finalize()
}
