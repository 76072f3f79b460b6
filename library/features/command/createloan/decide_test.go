package createloan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/createloan"
)

const (
	isbn      = "9780141439518"
	otherISBN = "9780199535569"
	userID    = "user-1"
	otherUser = "user-2"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func Test_Decide_Success_WhenCopyIsAvailable(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenUser(userID, core.DefaultUserPolicy()),
		givenCopy(isbn, "1"),
	}
	command := createloan.BuildCommand("loan-1", userID, "1", false, now)

	// act
	result := createloan.Decide(history, command)

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	started, ok := result.Events[0].(core.LoanStarted)
	require.True(t, ok)
	assert.Equal(t, "loan-1", started.LoanID)
	assert.Equal(t, isbn, started.ISBN)
	assert.Equal(t, core.DefaultLoanLengthDays, started.LoanLengthDays)
	assert.Equal(t, now, started.OccurredAt)
}

func Test_Decide_SnapshotsTheUsersLoanLength(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenUser(userID, core.UserPolicy{LoansAllowed: 5, LoanLengthDays: 21, RenewalLimit: 1}),
		givenCopy(isbn, "1"),
	}

	// act
	result := createloan.Decide(history, createloan.BuildCommand("loan-1", userID, "1", false, now))

	// assert
	require.Len(t, result.Events, 1)
	assert.Equal(t, 21, result.Events[0].(core.LoanStarted).LoanLengthDays)
}

func Test_Decide_Success_WhenHeldCopyIsLentWithIgnoreUnavailable(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenUser(userID, core.DefaultUserPolicy()),
		givenCopy(isbn, "1"),
		givenReservationPlaced("res-1", otherUser),
		givenCopyAssigned("res-1", otherUser, "1"),
	}

	// act
	result := createloan.Decide(history, createloan.BuildCommand("loan-1", userID, "1", true, now))

	// assert
	assert.NoError(t, result.HasError())
	assert.True(t, result.HasEventToAppend())
}

func Test_Decide_Idempotent_WhenLoanWasAlreadyStarted(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenUser(userID, core.DefaultUserPolicy()),
		givenCopy(isbn, "1"),
		core.BuildLoanStarted("loan-1", userID, isbn, "1", 7, now.Add(-time.Minute)),
	}

	// act
	result := createloan.Decide(history, createloan.BuildCommand("loan-1", userID, "1", false, now))

	// assert
	assert.True(t, result.IsIdempotent())
	assert.False(t, result.HasEventToAppend())
}

func Test_Decide_Error_Cases(t *testing.T) {
	testCases := []struct {
		name          string
		history       core.DomainEvents
		ignoreHold    bool
		expectedError error
	}{
		{
			name:          "user not registered",
			history:       core.DomainEvents{givenCopy(isbn, "1")},
			expectedError: core.ErrUserNotRegistered,
		},
		{
			name:          "copy removed from circulation",
			history:       core.DomainEvents{givenUser(userID, core.DefaultUserPolicy()), givenCopy(isbn, "1"), core.BuildBookCopyRemovedFromCirculation(isbn, "1", now)},
			expectedError: core.ErrCopyNotFound,
		},
		{
			name: "copy on loan to someone else",
			history: core.DomainEvents{
				givenUser(userID, core.DefaultUserPolicy()),
				givenCopy(isbn, "1"),
				core.BuildLoanStarted("loan-0", otherUser, isbn, "1", 7, now.Add(-time.Hour)),
			},
			expectedError: core.ErrBookUnavailable,
		},
		{
			name: "copy on loan even when ignoring holds",
			history: core.DomainEvents{
				givenUser(userID, core.DefaultUserPolicy()),
				givenCopy(isbn, "1"),
				core.BuildLoanStarted("loan-0", otherUser, isbn, "1", 7, now.Add(-time.Hour)),
			},
			ignoreHold:    true,
			expectedError: core.ErrBookUnavailable,
		},
		{
			name: "copy held for a reservation",
			history: core.DomainEvents{
				givenUser(userID, core.DefaultUserPolicy()),
				givenCopy(isbn, "1"),
				givenReservationPlaced("res-1", otherUser),
				givenCopyAssigned("res-1", otherUser, "1"),
			},
			expectedError: core.ErrBookUnavailable,
		},
		{
			name: "loan cap reached",
			history: core.DomainEvents{
				givenUser(userID, core.UserPolicy{LoansAllowed: 1, LoanLengthDays: 7, RenewalLimit: 3}),
				givenCopy(isbn, "1"),
				core.BuildLoanStarted("loan-0", userID, otherISBN, "9", 7, now.Add(-time.Hour)),
			},
			expectedError: core.ErrMaxLoans,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := createloan.Decide(tc.history, createloan.BuildCommand("loan-1", userID, "1", tc.ignoreHold, now))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedError)
			require.Len(t, result.Events, 1)
			refused, ok := result.Events[0].(core.LoanRefused)
			require.True(t, ok)
			assert.True(t, refused.IsErrorEvent())
			assert.NotEmpty(t, refused.FailureInfo)
		})
	}
}

func Test_Decide_MaxLoansErrorNamesUserAndLimit(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenUser(userID, core.UserPolicy{LoansAllowed: 2, LoanLengthDays: 7, RenewalLimit: 3}),
		givenCopy(isbn, "1"),
		core.BuildLoanStarted("loan-a", userID, otherISBN, "8", 7, now.Add(-2*time.Hour)),
		core.BuildLoanStarted("loan-b", userID, otherISBN, "9", 7, now.Add(-time.Hour)),
	}

	// act
	result := createloan.Decide(history, createloan.BuildCommand("loan-1", userID, "1", false, now))

	// assert
	var maxLoansErr core.MaxLoansError
	require.ErrorAs(t, result.HasError(), &maxLoansErr)
	assert.Equal(t, userID, maxLoansErr.UserID)
	assert.Equal(t, 2, maxLoansErr.LoansAllowed)
}

func Test_Decide_Success_WhenAnEarlierLoanOfTheUserWasReturned(t *testing.T) {
	// arrange
	earlier := core.BuildLoanStarted("loan-0", userID, otherISBN, "9", 7, now.Add(-48*time.Hour))
	history := core.DomainEvents{
		givenUser(userID, core.UserPolicy{LoansAllowed: 1, LoanLengthDays: 7, RenewalLimit: 3}),
		givenCopy(isbn, "1"),
		earlier,
		core.BuildLoanClosed(core.Loan{LoanID: "loan-0", UserID: userID, ISBN: otherISBN, AccessionCode: "9", LoanDate: earlier.OccurredAt}, now.Add(-time.Hour)),
	}

	// act
	result := createloan.Decide(history, createloan.BuildCommand("loan-1", userID, "1", false, now))

	// assert
	assert.NoError(t, result.HasError())
	assert.True(t, result.HasEventToAppend())
}

func givenUser(id core.UserIDString, policy core.UserPolicy) core.DomainEvent {
	return core.BuildUserRegistered(id, "Jane Reader", id+"@example.org", policy, now.Add(-72*time.Hour))
}

func givenCopy(isbn core.ISBNString, code core.AccessionCodeString) core.DomainEvent {
	return core.BuildBookCopyAddedToCirculation(isbn, code, now.Add(-48*time.Hour))
}

func givenReservationPlaced(reservationID core.ReservationIDString, user core.UserIDString) core.DomainEvent {
	return core.BuildReservationPlaced(reservationID, user, isbn, now.Add(-24*time.Hour))
}

func givenCopyAssigned(reservationID core.ReservationIDString, user core.UserIDString, code core.AccessionCodeString) core.DomainEvent {
	return core.BuildReservationCopyAssigned(
		core.Reservation{ReservationID: reservationID, UserID: user, ISBN: isbn},
		code,
		now.Add(-12*time.Hour),
	)
}
