package assigncopy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/assigncopy"
)

const (
	isbn      = "9780141439518"
	otherISBN = "9780199535569"
	user1     = "user-1"
	user2     = "user-2"
	resID     = "res-1"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func Test_Decide_AssignsFirstAvailableCopy(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenBook(),
		givenCopy("1"),
		givenCopy("2"),
		core.BuildLoanStarted("loan-1", user2, isbn, "1", 7, now.Add(-time.Hour)),
		givenReservation(resID, user1),
	}

	// act
	decision := assigncopy.Decide(history, assigncopy.BuildCommand(resID, "", false, now))

	// assert
	require.NoError(t, decision.HasError())
	assert.Equal(t, core.Assigned, decision.Outcome)
	require.Len(t, decision.Events, 1)
	assigned, ok := decision.Events[0].(core.ReservationCopyAssigned)
	require.True(t, ok)
	assert.Equal(t, "2", assigned.AccessionCode)
	assert.Equal(t, user1, assigned.UserID)
}

func Test_Decide_AssignsExplicitCopy(t *testing.T) {
	// arrange
	history := core.DomainEvents{givenBook(), givenCopy("1"), givenCopy("2"), givenReservation(resID, user1)}

	// act
	decision := assigncopy.Decide(history, assigncopy.BuildCommand(resID, "2", false, now))

	// assert
	require.NoError(t, decision.HasError())
	assert.Equal(t, core.Assigned, decision.Outcome)
	require.Len(t, decision.Events, 1)
	assert.Equal(t, "2", decision.Events[0].(core.ReservationCopyAssigned).AccessionCode)
}

func Test_Decide_NoCopyAvailable_WithoutEvents(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenBook(),
		givenCopy("1"),
		core.BuildLoanStarted("loan-1", user2, isbn, "1", 7, now.Add(-time.Hour)),
		givenReservation(resID, user1),
	}

	// act
	decision := assigncopy.Decide(history, assigncopy.BuildCommand(resID, "", false, now))

	// assert
	assert.True(t, decision.IsIdempotent())
	assert.Equal(t, core.NoCopyAvailable, decision.Outcome)
	assert.Empty(t, decision.Events)
}

func Test_Decide_AlreadyHadCopy_IsIdempotent(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenBook(),
		givenCopy("1"),
		givenCopy("2"),
		givenReservation(resID, user1),
		core.ReservationCopyAssigned{ReservationID: resID, UserID: user1, ISBN: isbn, AccessionCode: "1", OccurredAt: now.Add(-time.Hour)},
	}

	// act
	decision := assigncopy.Decide(history, assigncopy.BuildCommand(resID, "2", false, now))

	// assert
	assert.True(t, decision.IsIdempotent())
	assert.Equal(t, core.AlreadyHadCopy, decision.Outcome)
}

func Test_Decide_Error(t *testing.T) {
	testCases := []struct {
		name          string
		history       core.DomainEvents
		explicitCopy  core.AccessionCodeString
		expectedError error
	}{
		{
			name:          "unknown reservation",
			history:       core.DomainEvents{givenBook(), givenCopy("1")},
			expectedError: core.ErrReservationNotFound,
		},
		{
			name: "cancelled reservation",
			history: core.DomainEvents{
				givenBook(),
				givenCopy("1"),
				givenReservation(resID, user1),
				core.ReservationCancelled{ReservationID: resID, UserID: user1, ISBN: isbn, OccurredAt: now.Add(-time.Minute)},
			},
			expectedError: core.ErrReservationNotFound,
		},
		{
			name:          "explicit copy is on loan",
			history:       core.DomainEvents{givenBook(), givenCopy("1"), core.BuildLoanStarted("loan-1", user2, isbn, "1", 7, now.Add(-time.Hour)), givenReservation(resID, user1)},
			explicitCopy:  "1",
			expectedError: core.ErrBookUnavailable,
		},
		{
			name: "explicit copy is held for another reservation",
			history: core.DomainEvents{
				givenBook(),
				givenCopy("1"),
				givenReservation("res-0", user2),
				core.ReservationCopyAssigned{ReservationID: "res-0", UserID: user2, ISBN: isbn, AccessionCode: "1", OccurredAt: now.Add(-time.Hour)},
				givenReservation(resID, user1),
			},
			explicitCopy:  "1",
			expectedError: core.ErrBookUnavailable,
		},
		{
			name:          "explicit copy belongs to another title",
			history:       core.DomainEvents{givenBook(), core.BuildBookCopyAddedToCirculation(otherISBN, "9", now.Add(-48*time.Hour)), givenReservation(resID, user1)},
			explicitCopy:  "9",
			expectedError: core.ErrBookUnavailable,
		},
		{
			name:          "explicit copy is unknown",
			history:       core.DomainEvents{givenBook(), givenReservation(resID, user1)},
			explicitCopy:  "404",
			expectedError: core.ErrBookUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			decision := assigncopy.Decide(tc.history, assigncopy.BuildCommand(resID, tc.explicitCopy, false, now))

			// assert
			assert.ErrorIs(t, decision.HasError(), tc.expectedError)
			require.Len(t, decision.Events, 1)
			assert.IsType(t, core.ReservationRefused{}, decision.Events[0])
		})
	}
}

func givenBook() core.DomainEvent {
	return core.BuildBookAddedToCatalog(core.Book{
		ISBN:    isbn,
		Title:   "Emma",
		Authors: []core.Author{{ID: "OL21594A", Name: "Jane Austen"}},
	}, now.Add(-72*time.Hour))
}

func givenCopy(code core.AccessionCodeString) core.DomainEvent {
	return core.BuildBookCopyAddedToCirculation(isbn, code, now.Add(-48*time.Hour))
}

func givenReservation(id core.ReservationIDString, userID core.UserIDString) core.DomainEvent {
	return core.BuildReservationPlaced(id, userID, isbn, now.Add(-2*time.Hour))
}
