package changeuserpolicy_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/changeuserpolicy"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_CommandHandler_Handle_MovesDueDateOfActiveLoans(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	loanDate := now.Add(-48 * time.Hour)
	circulationtest.GivenEvents(t, store, append(givenRegisteredUser(),
		core.BuildBookCopyAddedToCirculation("9780141439518", "1", loanDate),
		core.BuildLoanStarted("loan-1", user1, "9780141439518", "1", core.DefaultLoanLengthDays, loanDate),
	)...)
	handler := changeuserpolicy.NewCommandHandler(store)
	policy := core.UserPolicy{LoansAllowed: 3, LoanLengthDays: 14, RenewalLimit: 3}

	// act
	_, err := handler.Handle(context.Background(), changeuserpolicy.BuildCommand(user1, policy, now))

	// assert
	require.NoError(t, err)
	loan, ok := circulationtest.Circulation(t, store).Loan("loan-1")
	require.True(t, ok)
	assert.Equal(t, core.Day(loanDate).AddDate(0, 0, 14), loan.DueDate())
}

func Test_CommandHandler_Handle_Error_WhenUserIsUnknown(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	handler := changeuserpolicy.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), changeuserpolicy.BuildCommand(user1, core.DefaultUserPolicy(), now))

	// assert
	assert.ErrorIs(t, err, core.ErrUserNotRegistered)
	assert.Len(t, circulationtest.EventsOfType[core.UserChangeRefused](t, store), 1)
}
