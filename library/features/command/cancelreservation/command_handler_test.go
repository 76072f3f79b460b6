package cancelreservation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
	"github.com/AntonStoeckl/library-circulation-go/testutil/circulationtest"
)

type notifierSpy struct {
	mu   sync.Mutex
	sent []shell.Notification
	err  error
}

func (s *notifierSpy) Notify(_ context.Context, notification shell.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, notification)

	return s.err
}

func Test_CommandHandler_Handle_ReleasesCopyAndNotifiesNextHolder(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	circulationtest.GivenEvents(t, store,
		givenBook(),
		givenCopy("1"),
		givenReservation("res-1", user1, -3*time.Hour),
		core.BuildReservationCopyAssigned(core.Reservation{ReservationID: "res-1", UserID: user1, ISBN: isbn}, "1", now.Add(-3*time.Hour)),
		givenReservation("res-2", user2, -2*time.Hour),
	)
	notifier := &notifierSpy{}
	handler := cancelreservation.NewCommandHandler(store, cancelreservation.WithNotifier(notifier))

	// act
	result, err := handler.Handle(context.Background(), cancelreservation.BuildCommand("res-1", now))

	// assert
	require.NoError(t, err)
	require.NotNil(t, result.HandOff)
	assert.Equal(t, "res-2", result.HandOff.ReservationID)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, user2, notifier.sent[0].UserID)

	c := circulationtest.Circulation(t, store)
	assert.True(t, c.ReservationEnded("res-1"))
	holder, ok := c.HolderOf("1")
	require.True(t, ok)
	assert.Equal(t, "res-2", holder.ReservationID)
}

func Test_CommandHandler_Handle_ReportsNotificationFailureWithoutRollback(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	circulationtest.GivenEvents(t, store,
		givenBook(),
		givenCopy("1"),
		givenReservation("res-1", user1, -3*time.Hour),
		core.BuildReservationCopyAssigned(core.Reservation{ReservationID: "res-1", UserID: user1, ISBN: isbn}, "1", now.Add(-3*time.Hour)),
		givenReservation("res-2", user2, -2*time.Hour),
	)
	mailErr := errors.New("smtp unavailable")
	handler := cancelreservation.NewCommandHandler(store, cancelreservation.WithNotifier(&notifierSpy{err: mailErr}))

	// act
	result, err := handler.Handle(context.Background(), cancelreservation.BuildCommand("res-1", now))

	// assert
	require.NoError(t, err)
	assert.ErrorIs(t, result.NotificationFailure(), mailErr)
	require.NotNil(t, result.HandOff)
	assert.Equal(t, "res-2", result.HandOff.ReservationID)
	assert.Len(t, circulationtest.EventsOfType[core.ReservationCancelled](t, store), 1)

	holder, ok := circulationtest.Circulation(t, store).HolderOf("1")
	require.True(t, ok)
	assert.Equal(t, "res-2", holder.ReservationID)
}

func Test_CommandHandler_Handle_FreesCopy_WhenNobodyWaits(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	circulationtest.GivenEvents(t, store,
		givenBook(),
		givenCopy("1"),
		givenReservation("res-1", user1, -3*time.Hour),
		core.BuildReservationCopyAssigned(core.Reservation{ReservationID: "res-1", UserID: user1, ISBN: isbn}, "1", now.Add(-3*time.Hour)),
	)
	notifier := &notifierSpy{}
	handler := cancelreservation.NewCommandHandler(store, cancelreservation.WithNotifier(notifier))

	// act
	result, err := handler.Handle(context.Background(), cancelreservation.BuildCommand("res-1", now))

	// assert
	require.NoError(t, err)
	assert.Nil(t, result.HandOff)
	assert.Empty(t, notifier.sent)
	status, _ := circulationtest.Circulation(t, store).CopyStatus("1")
	assert.Equal(t, core.CopyAvailable, status)
}

func Test_CommandHandler_Handle_Idempotent_WhenCancelledTwice(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	circulationtest.GivenEvents(t, store, givenBook(), givenReservation("res-1", user1, -time.Hour))
	handler := cancelreservation.NewCommandHandler(store)
	_, err := handler.Handle(context.Background(), cancelreservation.BuildCommand("res-1", now))
	require.NoError(t, err)

	// act
	result, err := handler.Handle(context.Background(), cancelreservation.BuildCommand("res-1", now.Add(time.Minute)))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Len(t, circulationtest.EventsOfType[core.ReservationCancelled](t, store), 1)
}

func Test_CommandHandler_Handle_Error_WhenReservationIsUnknown(t *testing.T) {
	// arrange
	store := memengine.NewEventStore()
	handler := cancelreservation.NewCommandHandler(store)

	// act
	_, err := handler.Handle(context.Background(), cancelreservation.BuildCommand("no-such-reservation", now))

	// assert
	assert.ErrorIs(t, err, core.ErrReservationNotFound)
}
