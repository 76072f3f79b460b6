package createreservation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/createreservation"
)

const (
	isbn  = "9780141439518"
	user1 = "user-1"
	user2 = "user-2"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func Test_Decide_AssignsFirstAvailableCopy(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenUser(user1),
		givenUser(user2),
		givenBook(),
		givenCopy("10"),
		givenCopy("2"),
		givenCopy("3"),
		core.BuildLoanStarted("loan-1", user2, isbn, "2", 7, now.Add(-time.Hour)),
	}

	// act
	result := createreservation.Decide(history, createreservation.BuildCommand("res-1", user1, isbn, now))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 2)
	assert.IsType(t, core.ReservationPlaced{}, result.Events[0])
	assigned, ok := result.Events[1].(core.ReservationCopyAssigned)
	require.True(t, ok)
	assert.Equal(t, "3", assigned.AccessionCode)
	assert.Equal(t, "res-1", assigned.ReservationID)
}

func Test_Decide_StaysPending_WhenNoCopyIsAvailable(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenUser(user1),
		givenUser(user2),
		givenBook(),
		givenCopy("1"),
		core.BuildLoanStarted("loan-1", user2, isbn, "1", 7, now.Add(-time.Hour)),
	}

	// act
	result := createreservation.Decide(history, createreservation.BuildCommand("res-1", user1, isbn, now))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	assert.IsType(t, core.ReservationPlaced{}, result.Events[0])
}

func Test_Decide_AllowsDuplicateReservationsAndReservingABorrowedTitle(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenUser(user1),
		givenBook(),
		givenCopy("1"),
		core.BuildLoanStarted("loan-1", user1, isbn, "1", 7, now.Add(-2*time.Hour)),
		core.BuildReservationPlaced("res-1", user1, isbn, now.Add(-time.Hour)),
	}

	// act
	result := createreservation.Decide(history, createreservation.BuildCommand("res-2", user1, isbn, now))

	// assert
	assert.NoError(t, result.HasError())
	assert.True(t, result.HasEventToAppend())
}

func Test_Decide_Idempotent_WhenReservationIDIsKnown(t *testing.T) {
	testCases := []struct {
		name    string
		history core.DomainEvents
	}{
		{
			name:    "active",
			history: core.DomainEvents{givenUser(user1), givenBook(), core.BuildReservationPlaced("res-1", user1, isbn, now.Add(-time.Hour))},
		},
		{
			name: "cancelled",
			history: core.DomainEvents{
				givenUser(user1),
				givenBook(),
				core.BuildReservationPlaced("res-1", user1, isbn, now.Add(-time.Hour)),
				core.BuildReservationCancelled(core.Reservation{ReservationID: "res-1", UserID: user1, ISBN: isbn}, now.Add(-time.Minute)),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := createreservation.Decide(tc.history, createreservation.BuildCommand("res-1", user1, isbn, now))

			assert.True(t, result.IsIdempotent())
		})
	}
}

func Test_Decide_Error_Cases(t *testing.T) {
	testCases := []struct {
		name          string
		history       core.DomainEvents
		expectedError error
	}{
		{name: "user not registered", history: core.DomainEvents{givenBook()}, expectedError: core.ErrUserNotRegistered},
		{name: "book not in catalog", history: core.DomainEvents{givenUser(user1)}, expectedError: core.ErrBookNotInCatalog},
		{
			name:          "book removed from catalog",
			history:       core.DomainEvents{givenUser(user1), givenBook(), core.BuildBookRemovedFromCatalog(core.Book{ISBN: isbn}, now.Add(-time.Hour))},
			expectedError: core.ErrBookNotInCatalog,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := createreservation.Decide(tc.history, createreservation.BuildCommand("res-1", user1, isbn, now))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedError)
			require.Len(t, result.Events, 1)
			assert.IsType(t, core.ReservationRefused{}, result.Events[0])
		})
	}
}

func givenUser(id core.UserIDString) core.DomainEvent {
	return core.BuildUserRegistered(id, "Reader "+id, id+"@example.org", core.DefaultUserPolicy(), now.Add(-72*time.Hour))
}

func givenBook() core.DomainEvent {
	return core.BuildBookAddedToCatalog(core.Book{ISBN: isbn, EditionID: "OL7353617M", WorkID: "OL66554W", Title: "Emma"}, now.Add(-72*time.Hour))
}

func givenCopy(code core.AccessionCodeString) core.DomainEvent {
	return core.BuildBookCopyAddedToCirculation(isbn, code, now.Add(-48*time.Hour))
}
