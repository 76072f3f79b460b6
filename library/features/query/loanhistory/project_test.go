package loanhistory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/loanhistory"
)

const (
	isbn  = "9780141439518"
	user1 = "user-1"
	user2 = "user-2"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func Test_Project_ListsClosedLoansNewestFirst(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenBook(),
		givenClosedLoan("loan-1", user1, now.Add(-20*24*time.Hour), now.Add(-15*24*time.Hour)),
		givenClosedLoan("loan-2", user2, now.Add(-12*24*time.Hour), now.Add(-10*24*time.Hour)),
		givenClosedLoan("loan-3", user1, now.Add(-9*24*time.Hour), now.Add(-2*24*time.Hour)),
	}

	// act
	result := loanhistory.Project(history, loanhistory.BuildQuery(user1), 4)

	// assert
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "loan-3", result.Entries[0].LoanID)
	assert.Equal(t, 7, result.Entries[0].DurationDays)
	assert.Equal(t, "loan-1", result.Entries[1].LoanID)
	assert.Equal(t, 5, result.Entries[1].DurationDays)
	assert.Equal(t, "Emma", result.Entries[1].Title)
}

func Test_Project_ListsAllUsers_WhenNoUserIsGiven(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenClosedLoan("loan-1", user1, now.Add(-20*24*time.Hour), now.Add(-15*24*time.Hour)),
		givenClosedLoan("loan-2", user2, now.Add(-12*24*time.Hour), now.Add(-10*24*time.Hour)),
	}

	// act
	result := loanhistory.Project(history, loanhistory.BuildQuery(""), 2)

	// assert
	assert.Equal(t, 2, result.Count)
}

func givenBook() core.DomainEvent {
	return core.BuildBookAddedToCatalog(core.Book{ISBN: isbn, Title: "Emma"}, now.Add(-30*24*time.Hour))
}

func givenClosedLoan(loanID core.LoanIDString, userID core.UserIDString, loanDate, returned time.Time) core.DomainEvent {
	return core.BuildLoanClosed(core.Loan{LoanID: loanID, UserID: userID, ISBN: isbn, AccessionCode: "1", LoanDate: loanDate}, returned)
}
