package userreservations

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

type QueryHandler struct {
	eventStore shell.QueriesEvents
}

func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{
		eventStore: eventStore,
	}
}

// Handle runs Query -> Unmarshal -> Project. Reads may lag behind the primary.
func (h QueryHandler) Handle(ctx context.Context, query Query) (UserReservations, error) {
	filter := BuildEventFilter(query.UserID)

	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return UserReservations{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return UserReservations{}, err
	}

	return Project(history, query, maxSequenceNumber), nil
}
