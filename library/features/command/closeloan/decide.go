package closeloan

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Decide closes the loan and hands the freed copy on.
//
// Business Rules:
//
//	GIVEN: An active loan with LoanID
//	WHEN: CloseLoan command is received
//	THEN: LoanClosed is generated, carrying the original loan date
//	THEN: ReservationCopyAssigned is generated for the oldest pending reservation of the title, if any
//	ERROR: ErrLoanNotFound if the loan was never started
//	IDEMPOTENCY: If the loan was already closed, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	c := core.ProjectCirculation(history)

	if _, ok := c.ClosedLoan(command.LoanID); ok {
		return core.IdempotentDecision()
	}

	loan, ok := c.Loan(command.LoanID)
	if !ok {
		event := core.BuildLoanRefused(command.LoanID, "", "", "", core.ErrLoanNotFound.Error(), command.OccurredAt)
		return core.ErrorDecision(event, core.ErrLoanNotFound)
	}

	closed := core.BuildLoanClosed(loan, command.OccurredAt)
	c.Apply(closed)

	if assigned, handedOff := c.HandOff(loan.AccessionCode, command.OccurredAt); handedOff {
		return core.SuccessDecision(closed, assigned)
	}

	return core.SuccessDecision(closed)
}

// BuildEventFilter creates the filter for the catalog entry, copies, loans and reservations of the title.
func BuildEventFilter(isbn core.ISBNString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookCopyAddedToCirculationEventType,
			core.BookCopyRemovedFromCirculationEventType,
			core.LoanStartedEventType,
			core.LoanClosedEventType,
			core.ReservationPlacedEventType,
			core.ReservationCopyAssignedEventType,
			core.ReservationCancelledEventType,
			core.ReservationTurnedIntoLoanEventType,
		).
		AndAnyPredicateOf(eventstore.P("ISBN", isbn)).
		Finalize()
}
