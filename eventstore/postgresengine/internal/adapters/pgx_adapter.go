package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXAdapter implements DBAdapter for pgxpool.Pool.
type PGXAdapter struct {
	pool        *pgxpool.Pool
	replicaPool *pgxpool.Pool // optional, only used for eventually consistent reads
}

// NewPGXAdapter creates a new PGX adapter with a primary pool.
func NewPGXAdapter(pool *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{pool: pool}
}

// NewPGXAdapterWithReplica creates a new PGX adapter with a primary pool and a replica pool.
func NewPGXAdapterWithReplica(pool *pgxpool.Pool, replica *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{pool: pool, replicaPool: replica}
}

// Query reads from the replica only when asked to and when one is configured.
func (p *PGXAdapter) Query(ctx context.Context, readFromReplica bool, query string, args ...any) (DBRows, error) {
	pool := p.pool

	if readFromReplica && p.replicaPool != nil {
		pool = p.replicaPool
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &pgxRows{rows: rows}, nil
}

// Exec executes a statement on the primary pool.
func (p *PGXAdapter) Exec(ctx context.Context, query string, args ...any) (DBResult, error) {
	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return &pgxResult{tag: tag}, nil
}

// ExecSerializable runs query in a serializable transaction on the primary pool.
func (p *PGXAdapter) ExecSerializable(ctx context.Context, query string, args ...any) (int64, error) {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		_ = tx.Rollback(ctx)
		return 0, classifyPGX(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, classifyPGX(err)
	}

	return tag.RowsAffected(), nil
}

func classifyPGX(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateSerializationFailure {
		return errors.Join(ErrSerializationFailure, err)
	}

	return err
}

// pgxRows wraps pgx.Rows to implement the DBRows interface.
type pgxRows struct {
	rows pgx.Rows
}

func (p *pgxRows) Next() bool {
	return p.rows.Next()
}

func (p *pgxRows) Scan(dest ...any) error {
	return p.rows.Scan(dest...)
}

func (p *pgxRows) Err() error {
	return p.rows.Err()
}

// Close closes the rows iterator. pgx reports errors through Err instead.
func (p *pgxRows) Close() error {
	p.rows.Close()
	return nil
}

// pgxResult wraps pgconn.CommandTag to implement the DBResult interface.
type pgxResult struct {
	tag pgconn.CommandTag
}

func (p *pgxResult) RowsAffected() (int64, error) {
	return p.tag.RowsAffected(), nil
}
