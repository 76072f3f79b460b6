// Package circulationtest seeds and inspects event stores in command and query handler tests.
package circulationtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

// GivenEvents appends events unconditionally, in order, as one batch.
func GivenEvents(t *testing.T, store shell.EventStore, events ...core.DomainEvent) {
	t.Helper()

	if len(events) == 0 {
		return
	}

	ctx := eventstore.WithStrongConsistency(context.Background())
	anyEvent := eventstore.BuildEventFilter().MatchingAnyEvent()

	_, maxSequenceNumber, err := store.Query(ctx, anyEvent)
	require.NoError(t, err, "querying the store before seeding it")

	first, rest, err := shell.StorableEventsForCommand(events)
	require.NoError(t, err, "mapping seed events")

	err = store.Append(ctx, anyEvent, maxSequenceNumber, first, rest...)
	require.NoError(t, err, "appending seed events")
}

// AllEvents returns the whole history as domain events.
func AllEvents(t *testing.T, store shell.QueriesEvents) core.DomainEvents {
	t.Helper()

	storableEvents, _, err := store.Query(
		eventstore.WithStrongConsistency(context.Background()),
		eventstore.BuildEventFilter().MatchingAnyEvent(),
	)
	require.NoError(t, err, "querying all events")

	events, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err, "mapping all events")

	return events
}

// EventsOfType returns the events of the given type in history order.
func EventsOfType[E core.DomainEvent](t *testing.T, store shell.QueriesEvents) []E {
	t.Helper()

	matching := make([]E, 0)
	for _, event := range AllEvents(t, store) {
		if e, ok := event.(E); ok {
			matching = append(matching, e)
		}
	}

	return matching
}

// Circulation projects the whole history.
func Circulation(t *testing.T, store shell.QueriesEvents) *core.Circulation {
	t.Helper()

	return core.ProjectCirculation(AllEvents(t, store))
}
