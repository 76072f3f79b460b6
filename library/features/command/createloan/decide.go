package createloan

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Decide determines whether the copy can be lent to the user.
//
// Business Rules:
//
//	GIVEN: A registered user and a copy in circulation
//	WHEN: CreateLoan command is received
//	THEN: LoanStarted is generated with the user's current loan length
//	ERROR: ErrUserNotRegistered if the user is unknown
//	ERROR: ErrCopyNotFound if the copy is not in circulation
//	ERROR: MaxLoansError if the user already has LoansAllowed active loans
//	ERROR: BookUnavailableError if the copy is on loan, or held for a reservation unless AllowIgnoreUnavailable
//	IDEMPOTENCY: If a loan with this LoanID was already started, no event is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	return DecideOn(core.ProjectCirculation(history), command)
}

// DecideOn is Decide for callers that already hold the projected Circulation.
func DecideOn(c *core.Circulation, command Command) core.DecisionResult {
	if _, ok := c.Loan(command.LoanID); ok {
		return core.IdempotentDecision()
	}

	if _, ok := c.ClosedLoan(command.LoanID); ok {
		return core.IdempotentDecision()
	}

	refuse := func(err error) core.DecisionResult {
		isbn := ""
		if bookCopy, ok := c.Copy(command.AccessionCode); ok {
			isbn = bookCopy.ISBN
		}

		event := core.BuildLoanRefused(command.LoanID, command.UserID, isbn, command.AccessionCode, err.Error(), command.OccurredAt)

		return core.ErrorDecision(event, err)
	}

	user, ok := c.User(command.UserID)
	if !ok {
		return refuse(core.ErrUserNotRegistered)
	}

	bookCopy, ok := c.Copy(command.AccessionCode)
	if !ok {
		return refuse(core.ErrCopyNotFound)
	}

	if c.NumActiveLoans(user.UserID) >= user.Policy.LoansAllowed {
		return refuse(core.MaxLoansError{UserID: user.UserID, LoansAllowed: user.Policy.LoansAllowed})
	}

	switch status, _ := c.CopyStatus(bookCopy.AccessionCode); status {
	case core.CopyOnLoan:
		return refuse(core.BookUnavailableError{AccessionCode: bookCopy.AccessionCode})

	case core.CopyReservedHeld:
		if !command.AllowIgnoreUnavailable {
			return refuse(core.BookUnavailableError{AccessionCode: bookCopy.AccessionCode})
		}

	case core.CopyAvailable:
	}

	return core.SuccessDecision(
		core.BuildLoanStarted(
			command.LoanID,
			user.UserID,
			bookCopy.ISBN,
			bookCopy.AccessionCode,
			user.Policy.LoanLengthDays,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for the copies, loans and holds of the title
// plus the registration and loans of the user.
func BuildEventFilter(isbn core.ISBNString, userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
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
		AnyEventTypeOf(
			core.UserRegisteredEventType,
			core.UserPolicyChangedEventType,
			core.LoanStartedEventType,
			core.LoanClosedEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
