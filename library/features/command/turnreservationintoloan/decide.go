package turnreservationintoloan

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/createloan"
)

// Decide turns a ready reservation into a loan.
//
// Business Rules:
//
//	GIVEN: An active reservation with ReservationID that holds a copy
//	WHEN: TurnReservationIntoLoan command is received
//	THEN: ReservationTurnedIntoLoan and LoanStarted are generated together
//	ERROR: ErrReservationNotFound if the reservation is not active
//	ERROR: ErrReservationHasNoCopy if no copy was assigned yet
//	ERROR: all errors of createloan.Decide, e.g. MaxLoansError, in which case the reservation stays ready
//	IDEMPOTENCY: If the loan with LoanID was already started, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	c := core.ProjectCirculation(history)

	if _, ok := c.Loan(command.LoanID); ok {
		return core.IdempotentDecision()
	}

	if _, ok := c.ClosedLoan(command.LoanID); ok {
		return core.IdempotentDecision()
	}

	reservation, ok := c.Reservation(command.ReservationID)
	if !ok {
		event := core.BuildReservationRefused(command.ReservationID, "", "", core.ErrReservationNotFound.Error(), command.OccurredAt)
		return core.ErrorDecision(event, core.ErrReservationNotFound)
	}

	if !reservation.HasCopy() {
		event := core.BuildReservationRefused(
			reservation.ReservationID,
			reservation.UserID,
			reservation.ISBN,
			core.ErrReservationHasNoCopy.Error(),
			command.OccurredAt,
		)

		return core.ErrorDecision(event, core.ErrReservationHasNoCopy)
	}

	loanDecision := createloan.DecideOn(c, createloan.BuildCommand(
		command.LoanID,
		reservation.UserID,
		reservation.AccessionCode,
		true,
		command.OccurredAt,
	))

	if loanDecision.HasError() != nil || !loanDecision.HasEventToAppend() {
		return loanDecision
	}

	turned := core.BuildReservationTurnedIntoLoan(reservation, command.LoanID, command.OccurredAt)

	return core.SuccessDecision(turned, loanDecision.Events...)
}

// BuildEventFilter is the boundary of createloan, which already covers the reservations of the title.
func BuildEventFilter(isbn core.ISBNString, userID core.UserIDString) eventstore.Filter {
	return createloan.BuildEventFilter(isbn, userID)
}
