package sqliteengine

import (
	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore) error

// WithTableName sets the table name for the EventStore.
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if tableName == "" {
			return eventstore.ErrEmptyEventsTableName
		}

		es.eventTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the EventStore.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: event counts, durations, concurrency conflicts (production-safe)
// Warn level: cleanup failures
// Error level: failures that abort the operation
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.observer.Logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger. It takes precedence over WithLogger
// and gets trace/span correlation when tracing is enabled.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) error {
		es.observer.ContextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for query/append durations, event counts,
// concurrency conflicts and database errors.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) error {
		es.observer.Metrics = collector
		return nil
	}
}

// WithTracing sets the tracing collector. Query and Append each get one span.
func WithTracing(collector eventstore.TracingCollector) Option {
	return func(es *EventStore) error {
		es.observer.Tracing = collector
		return nil
	}
}
