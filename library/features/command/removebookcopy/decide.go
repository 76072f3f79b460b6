package removebookcopy

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Decide removes a copy from circulation.
//
// Business Rules:
//
//	GIVEN: A copy in circulation that is neither on loan nor held
//	WHEN: RemoveBookCopy command is received
//	THEN: BookCopyRemovedFromCirculation is generated
//	ERROR: ErrCopyNotFound if the accession code was never used
//	ERROR: ErrCopyNotFree if the copy is on loan or held for a reservation
//	IDEMPOTENCY: If the copy was already removed, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	c := core.ProjectCirculation(history)

	bookCopy, ok := c.Copy(command.AccessionCode)
	if !ok {
		if c.AccessionCodeUsed(command.AccessionCode) {
			return core.IdempotentDecision()
		}

		event := core.BuildCatalogChangeRefused("", command.AccessionCode, core.ErrCopyNotFound.Error(), command.OccurredAt)
		return core.ErrorDecision(event, core.ErrCopyNotFound)
	}

	if status, _ := c.CopyStatus(bookCopy.AccessionCode); status != core.CopyAvailable {
		event := core.BuildCatalogChangeRefused(bookCopy.ISBN, bookCopy.AccessionCode, core.ErrCopyNotFree.Error(), command.OccurredAt)
		return core.ErrorDecision(event, core.ErrCopyNotFree)
	}

	return core.SuccessDecision(core.BuildBookCopyRemovedFromCirculation(bookCopy.ISBN, bookCopy.AccessionCode, command.OccurredAt))
}

// BuildEventFilter creates the filter for the copies, loans and holds of the title.
func BuildEventFilter(isbn core.ISBNString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookCopyAddedToCirculationEventType,
			core.BookCopyRemovedFromCirculationEventType,
			core.LoanStartedEventType,
			core.LoanClosedEventType,
			core.ReservationCopyAssignedEventType,
			core.ReservationCancelledEventType,
			core.ReservationTurnedIntoLoanEventType,
		).
		AndAnyPredicateOf(eventstore.P("ISBN", isbn)).
		Finalize()
}
