package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const (
	defaultMaxConnLifetime   = time.Hour
	defaultMaxConnIdleTime   = time.Minute * 5
	defaultHealthCheckPeriod = time.Minute
	defaultConnectTimeout    = time.Second * 5
	defaultMaxIdleConns      = 10
)

// PostgresPGXPoolConfig parses dsn and applies the pool limits of cfg.
func PostgresPGXPoolConfig(dsn string, cfg PostgresConfig) (*pgxpool.Config, error) {
	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	if cfg.MaxConns > 0 {
		dbConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		dbConfig.MinConns = cfg.MinConns
	}
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}

// PostgresPGXPool opens and pings a pgx pool.
func PostgresPGXPool(ctx context.Context, dsn string, cfg PostgresConfig) (*pgxpool.Pool, error) {
	dbConfig, err := PostgresPGXPoolConfig(dsn, cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", pingErr)
	}

	return pool, nil
}

// PostgresSQLDB opens and pings a database/sql handle on lib/pq.
func PostgresSQLDB(ctx context.Context, cfg PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	configureSQLPool(db, cfg)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", pingErr)
	}

	return db, nil
}

// PostgresSQLX opens and pings an sqlx handle on lib/pq.
func PostgresSQLX(ctx context.Context, cfg PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	configureSQLPool(db.DB, cfg)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", pingErr)
	}

	return db, nil
}

func configureSQLPool(db *sql.DB, cfg PostgresConfig) {
	maxOpen := int(cfg.MaxConns)
	if maxOpen <= 0 {
		maxOpen = 50
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(min(defaultMaxIdleConns, maxOpen))
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
}
