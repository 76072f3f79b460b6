package cataloghome

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

// Handle runs Query -> Unmarshal -> Project over the catalog events.
func (h QueryHandler) Handle(ctx context.Context, query Query) (CatalogHome, error) {
	filter := BuildEventFilter()

	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return CatalogHome{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return CatalogHome{}, err
	}

	return Project(history, query, maxSequenceNumber), nil
}
