// Package postgresengine provides a PostgreSQL implementation of the event store.
//
// It supports three connection types through internal adapters (pgxpool, database/sql with
// lib/pq, sqlx). Filters are translated to SQL with goqu: event types become an IN list and
// predicates become parameterized jsonb containment checks (payload @> '{"ISBN": "..."}').
//
// Usage:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithTableName("circulation_events"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//	_ = store.CreateSchema(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
