package registeruser_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/registeruser"
)

const user1 = "user-1"

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func Test_Decide_Success(t *testing.T) {
	// arrange
	policy := core.UserPolicy{LoansAllowed: 5, LoanLengthDays: 14, RenewalLimit: 1}

	// act
	result := registeruser.Decide(core.DomainEvents{}, registeruser.BuildCommand(user1, "Ada", "ada@example.org", policy, now))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	registered, ok := result.Events[0].(core.UserRegistered)
	require.True(t, ok)
	assert.Equal(t, policy, registered.Policy())
	assert.Equal(t, "ada@example.org", registered.Email)
}

func Test_Decide_Idempotent_WhenRegisteredWithSameData(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		core.BuildUserRegistered(user1, "Ada", "ada@example.org", core.DefaultUserPolicy(), now.Add(-time.Hour)),
	}

	// act
	result := registeruser.Decide(history, registeruser.BuildCommand(user1, "Ada", "ada@example.org", core.DefaultUserPolicy(), now))

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error(t *testing.T) {
	registered := core.BuildUserRegistered(user1, "Ada", "ada@example.org", core.DefaultUserPolicy(), now.Add(-time.Hour))

	testCases := []struct {
		name          string
		history       core.DomainEvents
		command       registeruser.Command
		expectedError error
	}{
		{
			name:          "registered with other data",
			history:       core.DomainEvents{registered},
			command:       registeruser.BuildCommand(user1, "Grace", "grace@example.org", core.DefaultUserPolicy(), now),
			expectedError: core.ErrObjectExists,
		},
		{
			name:          "loan length below one day",
			history:       core.DomainEvents{},
			command:       registeruser.BuildCommand(user1, "Ada", "ada@example.org", core.UserPolicy{LoansAllowed: 1}, now),
			expectedError: core.ErrInvalidPolicy,
		},
		{
			name:          "negative renewal limit",
			history:       core.DomainEvents{},
			command:       registeruser.BuildCommand(user1, "Ada", "ada@example.org", core.UserPolicy{LoansAllowed: 1, LoanLengthDays: 7, RenewalLimit: -1}, now),
			expectedError: core.ErrInvalidPolicy,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := registeruser.Decide(tc.history, tc.command)

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedError)
			require.Len(t, result.Events, 1)
			assert.IsType(t, core.UserChangeRefused{}, result.Events[0])
		})
	}
}
