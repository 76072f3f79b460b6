package assigncopy

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Decision is the DecisionResult plus the assignment outcome, which an idempotent result alone
// cannot express.
type Decision struct {
	core.DecisionResult
	Outcome core.AssignmentOutcome
}

// Decide assigns a copy to a reservation.
//
// Business Rules:
//
//	GIVEN: An active reservation with ReservationID
//	WHEN: AssignCopy command is received
//	THEN: ReservationCopyAssigned is generated for ExplicitCopy or the first available copy (Assigned)
//	ERROR: ErrReservationNotFound if the reservation is not active
//	ERROR: BookUnavailableError if ExplicitCopy is not a copy of the title, is on loan or is held elsewhere
//	IDEMPOTENCY: If the reservation already has a copy, no event is generated (AlreadyHadCopy)
//	IDEMPOTENCY: If no copy is available, no event is generated (NoCopyAvailable)
func Decide(history core.DomainEvents, command Command) Decision {
	c := core.ProjectCirculation(history)

	reservation, ok := c.Reservation(command.ReservationID)
	if !ok {
		event := core.BuildReservationRefused(command.ReservationID, "", "", core.ErrReservationNotFound.Error(), command.OccurredAt)
		return Decision{DecisionResult: core.ErrorDecision(event, core.ErrReservationNotFound), Outcome: core.NoCopyAvailable}
	}

	if reservation.HasCopy() {
		return Decision{DecisionResult: core.IdempotentDecision(), Outcome: core.AlreadyHadCopy}
	}

	if command.ExplicitCopy != "" {
		bookCopy, found := c.Copy(command.ExplicitCopy)
		status, _ := c.CopyStatus(command.ExplicitCopy)

		if !found || bookCopy.ISBN != reservation.ISBN || status != core.CopyAvailable {
			err := core.BookUnavailableError{AccessionCode: command.ExplicitCopy}
			event := core.BuildReservationRefused(reservation.ReservationID, reservation.UserID, reservation.ISBN, err.Error(), command.OccurredAt)

			return Decision{DecisionResult: core.ErrorDecision(event, err), Outcome: core.NoCopyAvailable}
		}

		return assigned(reservation, bookCopy.AccessionCode, command)
	}

	available := c.AvailableCopies(reservation.ISBN)
	if len(available) == 0 {
		return Decision{DecisionResult: core.IdempotentDecision(), Outcome: core.NoCopyAvailable}
	}

	return assigned(reservation, available[0].AccessionCode, command)
}

func assigned(reservation core.Reservation, accessionCode core.AccessionCodeString, command Command) Decision {
	return Decision{
		DecisionResult: core.SuccessDecision(core.BuildReservationCopyAssigned(reservation, accessionCode, command.OccurredAt)),
		Outcome:        core.Assigned,
	}
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
