package adapters

import (
	"context"
	"errors"
)

// ErrSerializationFailure is returned by ExecSerializable when PostgreSQL aborted the transaction
// because a concurrent transaction touched the same rows (SQLSTATE 40001).
var ErrSerializationFailure = errors.New("serialization failure")

const sqlStateSerializationFailure = "40001"

// DBAdapter defines the database operations needed by the event store.
type DBAdapter interface {
	// Query runs a read. With readFromReplica set, an adapter that has a replica uses it.
	Query(ctx context.Context, readFromReplica bool, query string, args ...any) (DBRows, error)

	// Exec runs a statement outside an explicit transaction.
	Exec(ctx context.Context, query string, args ...any) (DBResult, error)

	// ExecSerializable runs a single statement in a SERIALIZABLE transaction and returns the affected rows.
	ExecSerializable(ctx context.Context, query string, args ...any) (int64, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
