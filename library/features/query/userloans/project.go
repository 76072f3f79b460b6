package userloans

import (
	"slices"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

// Project lists the active loans of a user, the one due first on top.
//
// Query Logic:
//
//	GIVEN: A user with UserID
//	WHEN: UserLoans query is executed
//	THEN: the user's active loans are returned with due date and overdue flag
//	EXCLUDES: closed loans
func Project(history core.DomainEvents, query Query, maxSequenceNumber eventstore.MaxSequenceNumberUint) UserLoans {
	c := core.ProjectCirculation(history)

	loans := make([]LoanInfo, 0)
	overdue := 0

	for _, loan := range c.ActiveLoansOf(query.UserID) {
		book, _ := c.Book(loan.ISBN)

		info := LoanInfo{
			LoanID:        loan.LoanID,
			ISBN:          loan.ISBN,
			Title:         book.Title,
			Authors:       book.AuthorsNameString(),
			AccessionCode: loan.AccessionCode,
			LoanDate:      loan.LoanDate,
			RenewalDate:   loan.RenewalDate,
			Renewals:      loan.Renewals,
			DueDate:       loan.DueDate(),
			Overdue:       loan.IsOverdue(query.Today),
		}

		if info.Overdue {
			overdue++
		}

		loans = append(loans, info)
	}

	slices.SortStableFunc(loans, func(a, b LoanInfo) int {
		return a.DueDate.Compare(b.DueDate)
	})

	return UserLoans{
		UserID:         query.UserID,
		Loans:          loans,
		Count:          len(loans),
		OverdueCount:   overdue,
		SequenceNumber: maxSequenceNumber,
	}
}

// BuildEventFilter selects the loans and policy of the user plus the catalog for titles.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.UserRegisteredEventType,
			core.UserPolicyChangedEventType,
			core.LoanStartedEventType,
			core.LoanRenewedEventType,
			core.LoanClosedEventType,
		).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		OrMatching().
		AnyEventTypeOf(core.BookAddedToCatalogEventType).
		Finalize()
}
