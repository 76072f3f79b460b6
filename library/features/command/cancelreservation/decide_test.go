package cancelreservation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/cancelreservation"
)

const (
	isbn  = "9780141439518"
	user1 = "user-1"
	user2 = "user-2"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func Test_Decide_CancelsPendingReservation(t *testing.T) {
	// arrange
	history := core.DomainEvents{givenBook(), givenReservation("res-1", user1, -2*time.Hour)}

	// act
	result := cancelreservation.Decide(history, cancelreservation.BuildCommand("res-1", now))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	cancelled, ok := result.Events[0].(core.ReservationCancelled)
	require.True(t, ok)
	assert.Equal(t, user1, cancelled.UserID)
	assert.Empty(t, cancelled.AccessionCode)
}

func Test_Decide_HandsReleasedCopyToNextReservation(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		givenBook(),
		givenCopy("1"),
		givenReservation("res-1", user1, -3*time.Hour),
		core.BuildReservationCopyAssigned(core.Reservation{ReservationID: "res-1", UserID: user1, ISBN: isbn}, "1", now.Add(-3*time.Hour)),
		givenReservation("res-2", user2, -2*time.Hour),
	}

	// act
	result := cancelreservation.Decide(history, cancelreservation.BuildCommand("res-1", now))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 2)
	assert.Equal(t, "1", result.Events[0].(core.ReservationCancelled).AccessionCode)
	assigned, ok := result.Events[1].(core.ReservationCopyAssigned)
	require.True(t, ok)
	assert.Equal(t, "res-2", assigned.ReservationID)
	assert.Equal(t, "1", assigned.AccessionCode)
}

func Test_Decide_Idempotent_WhenAlreadyCancelled(t *testing.T) {
	// arrange
	reservation := core.Reservation{ReservationID: "res-1", UserID: user1, ISBN: isbn}
	history := core.DomainEvents{
		givenBook(),
		givenReservation("res-1", user1, -2*time.Hour),
		core.BuildReservationCancelled(reservation, now.Add(-time.Hour)),
	}

	// act
	result := cancelreservation.Decide(history, cancelreservation.BuildCommand("res-1", now))

	// assert
	assert.True(t, result.IsIdempotent())
	assert.Empty(t, result.Events)
}

func Test_Decide_Error_WhenReservationIsUnknown(t *testing.T) {
	// act
	result := cancelreservation.Decide(core.DomainEvents{givenBook()}, cancelreservation.BuildCommand("res-1", now))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrReservationNotFound)
	require.Len(t, result.Events, 1)
	assert.IsType(t, core.ReservationRefused{}, result.Events[0])
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

func givenReservation(id core.ReservationIDString, userID core.UserIDString, offset time.Duration) core.DomainEvent {
	return core.BuildReservationPlaced(id, userID, isbn, now.Add(offset))
}
