package cancelreservation

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Decide cancels a reservation.
//
// Business Rules:
//
//	GIVEN: An active reservation with ReservationID
//	WHEN: CancelReservation command is received
//	THEN: ReservationCancelled is generated
//	THEN: ReservationCopyAssigned is generated for the next pending reservation if a held copy was released
//	ERROR: ErrReservationNotFound if the reservation was never placed
//	IDEMPOTENCY: If the reservation was already cancelled or collected, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	c := core.ProjectCirculation(history)

	if c.ReservationEnded(command.ReservationID) {
		return core.IdempotentDecision()
	}

	reservation, ok := c.Reservation(command.ReservationID)
	if !ok {
		event := core.BuildReservationRefused(command.ReservationID, "", "", core.ErrReservationNotFound.Error(), command.OccurredAt)
		return core.ErrorDecision(event, core.ErrReservationNotFound)
	}

	cancelled := core.BuildReservationCancelled(reservation, command.OccurredAt)

	if !reservation.HasCopy() {
		return core.SuccessDecision(cancelled)
	}

	c.Apply(cancelled)

	if assigned, handedOff := c.HandOff(reservation.AccessionCode, command.OccurredAt); handedOff {
		return core.SuccessDecision(cancelled, assigned)
	}

	return core.SuccessDecision(cancelled)
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
