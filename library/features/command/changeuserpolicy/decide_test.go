package changeuserpolicy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/changeuserpolicy"
)

const user1 = "user-1"

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func Test_Decide_Success(t *testing.T) {
	// arrange
	policy := core.UserPolicy{LoansAllowed: 10, LoanLengthDays: 21, RenewalLimit: 5}

	// act
	result := changeuserpolicy.Decide(givenRegisteredUser(), changeuserpolicy.BuildCommand(user1, policy, now))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	changed, ok := result.Events[0].(core.UserPolicyChanged)
	require.True(t, ok)
	assert.Equal(t, policy, changed.Policy())
}

func Test_Decide_Idempotent_WhenPolicyIsUnchanged(t *testing.T) {
	// act
	result := changeuserpolicy.Decide(givenRegisteredUser(), changeuserpolicy.BuildCommand(user1, core.DefaultUserPolicy(), now))

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error(t *testing.T) {
	testCases := []struct {
		name          string
		history       core.DomainEvents
		policy        core.UserPolicy
		expectedError error
	}{
		{
			name:          "user not registered",
			history:       core.DomainEvents{},
			policy:        core.DefaultUserPolicy(),
			expectedError: core.ErrUserNotRegistered,
		},
		{
			name:          "negative loans allowed",
			history:       givenRegisteredUser(),
			policy:        core.UserPolicy{LoansAllowed: -1, LoanLengthDays: 7},
			expectedError: core.ErrInvalidPolicy,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := changeuserpolicy.Decide(tc.history, changeuserpolicy.BuildCommand(user1, tc.policy, now))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedError)
			require.Len(t, result.Events, 1)
			assert.IsType(t, core.UserChangeRefused{}, result.Events[0])
		})
	}
}

func givenRegisteredUser() core.DomainEvents {
	return core.DomainEvents{
		core.BuildUserRegistered(user1, "Ada", "ada@example.org", core.DefaultUserPolicy(), now.Add(-time.Hour)),
	}
}
