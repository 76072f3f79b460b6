package turnreservationintoloan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/turnreservationintoloan"
)

const (
	isbn   = "9780141439518"
	user1  = "user-1"
	user2  = "user-2"
	resID  = "res-1"
	loanID = "loan-1"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func Test_Decide_TurnsReadyReservationIntoLoan(t *testing.T) {
	// arrange
	history := givenReadyReservation(core.DefaultUserPolicy())

	// act
	result := turnreservationintoloan.Decide(history, turnreservationintoloan.BuildCommand(resID, loanID, now))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 2)

	turned, ok := result.Events[0].(core.ReservationTurnedIntoLoan)
	require.True(t, ok)
	assert.Equal(t, "1", turned.AccessionCode)
	assert.Equal(t, loanID, turned.LoanID)

	started, ok := result.Events[1].(core.LoanStarted)
	require.True(t, ok)
	assert.Equal(t, user1, started.UserID)
	assert.Equal(t, "1", started.AccessionCode)
}

func Test_Decide_LeavesNextReservationPending_WhenCopyGoesOnLoan(t *testing.T) {
	// arrange
	history := append(
		givenReadyReservation(core.DefaultUserPolicy()),
		core.BuildUserRegistered(user2, "Reader Two", "two@example.org", core.DefaultUserPolicy(), now.Add(-72*time.Hour)),
		core.BuildReservationPlaced("res-2", user2, isbn, now.Add(-time.Hour)),
	)

	// act
	result := turnreservationintoloan.Decide(history, turnreservationintoloan.BuildCommand(resID, loanID, now))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 2)
	for _, event := range result.Events {
		assert.NotEqual(t, core.ReservationCopyAssignedEventType, event.IsEventType())
	}

	c := core.ProjectCirculation(append(history, result.Events...))
	pending, ok := c.OldestPendingReservation(isbn)
	require.True(t, ok)
	assert.Equal(t, "res-2", pending.ReservationID)
	assert.False(t, pending.HasCopy())
	status, _ := c.CopyStatus("1")
	assert.Equal(t, core.CopyOnLoan, status)
}

func Test_Decide_Idempotent_WhenLoanWasAlreadyStarted(t *testing.T) {
	// arrange
	history := givenReadyReservation(core.DefaultUserPolicy())
	first := turnreservationintoloan.Decide(history, turnreservationintoloan.BuildCommand(resID, loanID, now))
	require.NoError(t, first.HasError())

	// act
	result := turnreservationintoloan.Decide(append(history, first.Events...), turnreservationintoloan.BuildCommand(resID, loanID, now))

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_KeepsReservation_WhenUserHasMaxLoans(t *testing.T) {
	// arrange
	policy := core.DefaultUserPolicy()
	policy.LoansAllowed = 1
	history := append(
		givenReadyReservation(policy),
		core.BuildBookCopyAddedToCirculation(isbn, "2", now.Add(-48*time.Hour)),
		core.BuildLoanStarted("loan-0", user1, isbn, "2", 7, now.Add(-time.Hour)),
	)

	// act
	result := turnreservationintoloan.Decide(history, turnreservationintoloan.BuildCommand(resID, loanID, now))

	// assert
	var maxLoans core.MaxLoansError
	require.ErrorAs(t, result.HasError(), &maxLoans)
	assert.Equal(t, 1, maxLoans.LoansAllowed)
	require.Len(t, result.Events, 1)
	assert.IsType(t, core.LoanRefused{}, result.Events[0])
}

func Test_Decide_Error(t *testing.T) {
	testCases := []struct {
		name          string
		history       core.DomainEvents
		expectedError error
	}{
		{
			name:          "unknown reservation",
			history:       core.DomainEvents{givenUser(core.DefaultUserPolicy())},
			expectedError: core.ErrReservationNotFound,
		},
		{
			name: "pending reservation",
			history: core.DomainEvents{
				givenUser(core.DefaultUserPolicy()),
				core.BuildBookCopyAddedToCirculation(isbn, "1", now.Add(-48*time.Hour)),
				core.BuildReservationPlaced(resID, user1, isbn, now.Add(-2*time.Hour)),
			},
			expectedError: core.ErrReservationHasNoCopy,
		},
		{
			name: "cancelled reservation",
			history: append(
				givenReadyReservation(core.DefaultUserPolicy()),
				core.BuildReservationCancelled(core.Reservation{ReservationID: resID, UserID: user1, ISBN: isbn, AccessionCode: "1"}, now.Add(-time.Minute)),
			),
			expectedError: core.ErrReservationNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := turnreservationintoloan.Decide(tc.history, turnreservationintoloan.BuildCommand(resID, loanID, now))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedError)
			require.Len(t, result.Events, 1)
			assert.IsType(t, core.ReservationRefused{}, result.Events[0])
		})
	}
}

func givenUser(policy core.UserPolicy) core.DomainEvent {
	return core.BuildUserRegistered(user1, "Reader One", "one@example.org", policy, now.Add(-72*time.Hour))
}

func givenReadyReservation(policy core.UserPolicy) core.DomainEvents {
	reservation := core.Reservation{ReservationID: resID, UserID: user1, ISBN: isbn}

	return core.DomainEvents{
		givenUser(policy),
		core.BuildBookCopyAddedToCirculation(isbn, "1", now.Add(-48*time.Hour)),
		core.BuildReservationPlaced(resID, user1, isbn, now.Add(-3*time.Hour)),
		core.BuildReservationCopyAssigned(reservation, "1", now.Add(-2*time.Hour)),
	}
}
