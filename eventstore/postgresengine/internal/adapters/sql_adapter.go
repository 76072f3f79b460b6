package adapters

import (
	"context"
	"database/sql"
)

// SQLAdapter implements DBAdapter for sql.DB, usually opened with the lib/pq driver.
type SQLAdapter struct {
	db *sql.DB
}

// NewSQLAdapter creates a new SQL adapter.
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

// Query ignores readFromReplica, a sql.DB has no replica.
func (s *SQLAdapter) Query(ctx context.Context, _ bool, query string, args ...any) (DBRows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func (s *SQLAdapter) Exec(ctx context.Context, query string, args ...any) (DBResult, error) {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &stdResult{result: result}, nil
}

func (s *SQLAdapter) ExecSerializable(ctx context.Context, query string, args ...any) (int64, error) {
	return execSerializableStd(ctx, s.db, query, args...)
}
