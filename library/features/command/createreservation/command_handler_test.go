package createreservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/createreservation"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

func Test_CommandHandler_Handle_ReadyAtOnce_WhenCopyIsAvailable(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	circulationtest.GivenEvents(t, store, givenUser(user1), givenBook(), givenCopy("1"))
	handler := createreservation.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), createreservation.BuildCommand("res-1", user1, isbn, now))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.Assigned, result.Outcome)
	assert.Equal(t, "1", result.AccessionCode)

	c := circulationtest.Circulation(t, store)
	status, _ := c.CopyStatus("1")
	assert.Equal(t, core.CopyReservedHeld, status)
	reservation, ok := c.Reservation("res-1")
	require.True(t, ok)
	require.NotNil(t, reservation.ReadySince)
	assert.Equal(t, now, *reservation.ReadySince)
}

func Test_CommandHandler_Handle_Pending_WhenAllCopiesAreOut(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	circulationtest.GivenEvents(t, store,
		givenUser(user1),
		givenUser(user2),
		givenBook(),
		givenCopy("1"),
		core.BuildLoanStarted("loan-1", user2, isbn, "1", 7, now.Add(-time.Hour)),
	)
	handler := createreservation.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), createreservation.BuildCommand("res-1", user1, isbn, now))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.NoCopyAvailable, result.Outcome)
	assert.Empty(t, result.AccessionCode)

	reservation, ok := circulationtest.Circulation(t, store).OldestPendingReservation(isbn)
	require.True(t, ok)
	assert.Equal(t, "res-1", reservation.ReservationID)
}

func Test_CommandHandler_Handle_Idempotent_WhenRepeated(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	circulationtest.GivenEvents(t, store, givenUser(user1), givenBook())
	handler := createreservation.NewCommandHandler(store)
	command := createreservation.BuildCommand("res-1", user1, isbn, now)
	_, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Len(t, circulationtest.EventsOfType[core.ReservationPlaced](t, store), 1)
}

func Test_CommandHandler_Handle_Error_WhenUserIsUnknown(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	circulationtest.GivenEvents(t, store, givenBook())
	handler := createreservation.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), createreservation.BuildCommand("res-1", "ghost", isbn, now))

	// assert
	assert.ErrorIs(t, err, core.ErrUserNotRegistered)
	assert.Len(t, circulationtest.EventsOfType[core.ReservationRefused](t, store), 1)
}

func Test_CommandHandler_Handle_FindsBook_WhenISBNIsHyphenated(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	circulationtest.GivenEvents(t, store, givenUser(user1), givenBook(), givenCopy("1"))
	handler := createreservation.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(), createreservation.BuildCommand("res-1", user1, "978-0-14-143951-8", now))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.Assigned, result.Outcome)
	reservation, ok := circulationtest.Circulation(t, store).Reservation("res-1")
	require.True(t, ok)
	assert.Equal(t, isbn, reservation.ISBN)
}
