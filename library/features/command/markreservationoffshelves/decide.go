package markreservationoffshelves

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Decide sets the off-shelves flag of a reservation.
//
// Business Rules:
//
//	GIVEN: An active reservation with ReservationID
//	WHEN: MarkReservationOffShelves command is received
//	THEN: ReservationMarkedOffShelves is generated
//	ERROR: ErrReservationNotFound if the reservation is not active
//	IDEMPOTENCY: If the flag already has the requested value, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	c := core.ProjectCirculation(history)

	reservation, ok := c.Reservation(command.ReservationID)
	if !ok {
		event := core.BuildReservationRefused(command.ReservationID, "", "", core.ErrReservationNotFound.Error(), command.OccurredAt)
		return core.ErrorDecision(event, core.ErrReservationNotFound)
	}

	if reservation.OffShelves == command.OffShelves {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildReservationMarkedOffShelves(reservation, command.OffShelves, command.OccurredAt))
}

// BuildEventFilter creates the filter for the lifecycle of one reservation.
func BuildEventFilter(reservationID core.ReservationIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.ReservationPlacedEventType,
			core.ReservationCopyAssignedEventType,
			core.ReservationMarkedOffShelvesEventType,
			core.ReservationCancelledEventType,
			core.ReservationTurnedIntoLoanEventType,
		).
		AndAnyPredicateOf(eventstore.P("ReservationID", reservationID)).
		Finalize()
}
