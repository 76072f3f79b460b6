// Package adapters lets the PostgreSQL event store run on pgxpool.Pool, sql.DB (lib/pq) or sqlx.DB.
//
// Appends go through ExecSerializable. A serialization failure (SQLSTATE 40001) is reported as
// ErrSerializationFailure, which the engine turns into eventstore.ErrConcurrencyConflict.
package adapters
