package renewloan

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Decide computes the renewal of a loan.
//
// Business Rules:
//
//	GIVEN: An active loan with LoanID
//	WHEN: RenewLoan command is received
//	THEN: LoanRenewed is generated with Renewals+1, the renewal date set to now and the borrower's current loan length
//	ERROR: ErrLoanNotFound if the loan is not active
//	ERROR: MaxRenewalsError if Renewals >= RenewalLimit and the command is not forced
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	c := core.ProjectCirculation(history)

	loan, ok := c.Loan(command.LoanID)
	if !ok {
		event := core.BuildRenewalRefused(core.Loan{LoanID: command.LoanID}, core.ErrLoanNotFound.Error(), command.OccurredAt)
		return core.ErrorDecision(event, core.ErrLoanNotFound)
	}

	policy := core.UserPolicy{LoanLengthDays: loan.LoanLengthDays, RenewalLimit: core.DefaultRenewalLimit}
	if user, found := c.User(loan.UserID); found {
		policy = user.Policy
	}

	overLimit := loan.Renewals >= policy.RenewalLimit
	if overLimit && !command.Force {
		err := core.MaxRenewalsError{LoanID: loan.LoanID, RenewalLimit: policy.RenewalLimit}
		return core.ErrorDecision(core.BuildRenewalRefused(loan, err.Error(), command.OccurredAt), err)
	}

	return core.SuccessDecision(
		core.BuildLoanRenewed(loan, loan.Renewals+1, policy.LoanLengthDays, overLimit, command.OccurredAt),
	)
}

// BuildEventFilter creates the filter for the loans of the title and the borrower's policy.
func BuildEventFilter(isbn core.ISBNString, userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.LoanStartedEventType,
			core.LoanRenewedEventType,
			core.LoanClosedEventType,
		).
		AndAnyPredicateOf(eventstore.P("ISBN", isbn)).
		OrMatching().
		AnyEventTypeOf(
			core.UserRegisteredEventType,
			core.UserPolicyChangedEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
