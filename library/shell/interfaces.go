package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// QueriesEvents is the read side of an event store.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// EventStore is what command handlers need from an engine.
type EventStore interface {
	QueriesEvents
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// Command is the intent to change the circulation. CommandType labels logs, metrics and spans.
type Command interface {
	CommandType() string
}

// CommandResult is returned by every command handler. Slice specific results embed HandlerResult
// and add their business outcome.
type CommandResult interface {
	Handled() HandlerResult
}

// CommandHandler processes one kind of command.
type CommandHandler[C Command, R CommandResult] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// Query asks for a projection. QueryType labels logs, metrics and spans.
type Query interface {
	QueryType() string
}

// QueryResult is a projection. GetSequenceNumber is the highest sequence number it includes.
type QueryResult interface {
	GetSequenceNumber() uint
}

// QueryHandler processes one kind of query.
type QueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// ReportsNotificationFailure is implemented by results of commands that notify users after the append.
type ReportsNotificationFailure interface {
	NotificationFailure() error
}
