package createreservation

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Decide places the reservation and tries to assign a copy right away.
//
// Business Rules:
//
//	GIVEN: A registered user and a book in the catalog
//	WHEN: CreateReservation command is received
//	THEN: ReservationPlaced is generated
//	THEN: ReservationCopyAssigned is generated for the first available copy, if any
//	ERROR: ErrUserNotRegistered if the user is unknown
//	ERROR: ErrBookNotInCatalog if the ISBN is not in the catalog
//	IDEMPOTENCY: If a reservation with this ReservationID exists or existed, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	c := core.ProjectCirculation(history)

	if _, ok := c.Reservation(command.ReservationID); ok || c.ReservationEnded(command.ReservationID) {
		return core.IdempotentDecision()
	}

	refuse := func(err error) core.DecisionResult {
		event := core.BuildReservationRefused(command.ReservationID, command.UserID, command.ISBN, err.Error(), command.OccurredAt)
		return core.ErrorDecision(event, err)
	}

	if _, ok := c.User(command.UserID); !ok {
		return refuse(core.ErrUserNotRegistered)
	}

	if _, ok := c.Book(command.ISBN); !ok {
		return refuse(core.ErrBookNotInCatalog)
	}

	placed := core.BuildReservationPlaced(command.ReservationID, command.UserID, command.ISBN, command.OccurredAt)
	c.Apply(placed)

	reservation, _ := c.Reservation(command.ReservationID)

	available := c.AvailableCopies(command.ISBN)
	if len(available) == 0 {
		return core.SuccessDecision(placed)
	}

	return core.SuccessDecision(
		placed,
		core.BuildReservationCopyAssigned(reservation, available[0].AccessionCode, command.OccurredAt),
	)
}

// BuildEventFilter creates the filter for the title's catalog entry, copies, loans and reservations
// plus the registration of the user.
func BuildEventFilter(isbn core.ISBNString, userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookRemovedFromCatalogEventType,
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
		OrMatching().
		AnyEventTypeOf(core.UserRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
