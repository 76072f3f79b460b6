package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-circulation-go/eventstore/sqliteengine"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/library/shell/notify"
)

// app holds the collaborators shared by all subcommands of one invocation.
type app struct {
	store         shell.EventStore
	notifier      shell.Notifier
	clock         shell.Clock
	ids           shell.IDGenerator
	logger        *slog.Logger
	observability *config.ObservabilityProviders
	closers       []func(ctx context.Context) error
}

type schemaCreator interface {
	CreateSchema(ctx context.Context) error
}

// appBuilder creates the app for the resolved flags. Tests swap it for one that returns a shared app.
type appBuilder func(ctx context.Context, flags rootFlags, errOut io.Writer) (*app, error)

func buildApp(ctx context.Context, flags rootFlags, errOut io.Writer) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	if flags.store != "" {
		cfg.Store = flags.store
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	a := &app{
		clock:  shell.SystemClock{},
		ids:    shell.UUIDGenerator{},
		logger: config.InitLogger(cfg.LogLevel, errOut),
	}

	if cfg.Observability.Enabled {
		a.observability, err = config.NewObservabilityProviders(ctx, cfg.Observability, config.WithGlobalProviders())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, a.observability.Shutdown)
	}

	if a.store, err = a.openStore(ctx, cfg); err != nil {
		return nil, errors.Join(err, a.close(ctx))
	}

	if a.notifier, err = a.openNotifier(cfg.Notifier); err != nil {
		return nil, errors.Join(err, a.close(ctx))
	}

	a.logger.Debug("lmsctl ready", "store", cfg.Store, "notifier", cfg.Notifier.Kind, "observability", cfg.Observability.Enabled,
		"traceEndpoint", cfg.Observability.TraceEndpoint, "metricEndpoint", cfg.Observability.MetricEndpoint)

	return a, nil
}

func (a *app) openStore(ctx context.Context, cfg config.FileConfig) (shell.EventStore, error) {
	switch cfg.Store {
	case config.StorePostgres:
		return a.openPostgres(ctx, cfg.Postgres)

	case config.StoreSQLite:
		db, err := sqliteengine.Open(cfg.SQLite.Path, cfg.SQLite.BusyTimeout)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })

		store, err := sqliteengine.NewEventStore(db, a.sqliteOptions(cfg.SQLite)...)
		if err != nil {
			return nil, err
		}

		if err = store.CreateSchema(ctx); err != nil {
			return nil, err
		}

		return store, nil

	default:
		return memengine.NewEventStore(memengine.WithLogger(a.logger)), nil
	}
}

func (a *app) openPostgres(ctx context.Context, cfg config.PostgresConfig) (postgresengine.EventStore, error) {
	options := a.postgresOptions(cfg)

	switch cfg.Driver {
	case config.DriverSQL:
		db, err := config.PostgresSQLDB(ctx, cfg)
		if err != nil {
			return postgresengine.EventStore{}, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })

		return postgresengine.NewEventStoreFromSQLDB(db, options...)

	case config.DriverSQLX:
		db, err := config.PostgresSQLX(ctx, cfg)
		if err != nil {
			return postgresengine.EventStore{}, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })

		return postgresengine.NewEventStoreFromSQLX(db, options...)

	default:
		primary, err := config.PostgresPGXPool(ctx, cfg.DSN, cfg)
		if err != nil {
			return postgresengine.EventStore{}, err
		}
		a.closers = append(a.closers, func(context.Context) error { primary.Close(); return nil })

		if cfg.ReplicaDSN == "" {
			return postgresengine.NewEventStoreFromPGXPool(primary, options...)
		}

		replica, err := config.PostgresPGXPool(ctx, cfg.ReplicaDSN, cfg)
		if err != nil {
			return postgresengine.EventStore{}, err
		}
		a.closers = append(a.closers, func(context.Context) error { replica.Close(); return nil })

		return postgresengine.NewEventStoreFromPGXPoolAndReplica(primary, replica, options...)
	}
}

func (a *app) postgresOptions(cfg config.PostgresConfig) []postgresengine.Option {
	options := []postgresengine.Option{postgresengine.WithContextualLogger(a.logger)}

	if cfg.TableName != "" {
		options = append(options, postgresengine.WithTableName(cfg.TableName))
	}

	if a.observability != nil {
		options = append(options,
			postgresengine.WithMetrics(a.observability.MetricsCollector),
			postgresengine.WithTracing(a.observability.TracingCollector),
		)
	}

	return options
}

func (a *app) sqliteOptions(cfg config.SQLiteConfig) []sqliteengine.Option {
	options := []sqliteengine.Option{sqliteengine.WithContextualLogger(a.logger)}

	if cfg.TableName != "" {
		options = append(options, sqliteengine.WithTableName(cfg.TableName))
	}

	if a.observability != nil {
		options = append(options,
			sqliteengine.WithMetrics(a.observability.MetricsCollector),
			sqliteengine.WithTracing(a.observability.TracingCollector),
		)
	}

	return options
}

func (a *app) openNotifier(cfg config.NotifierConfig) (shell.Notifier, error) {
	switch cfg.Kind {
	case config.NotifierRedis:
		client := config.RedisClient(cfg)
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })

		options := []notify.RedisOption{notify.WithClock(a.clock)}
		if cfg.Stream != "" {
			options = append(options, notify.WithStream(cfg.Stream))
		}
		if cfg.MaxLen > 0 {
			options = append(options, notify.WithMaxLen(cfg.MaxLen))
		}

		return notify.NewRedisStreamNotifier(client, options...)

	case config.NotifierNone:
		return notify.NopNotifier{}, nil

	default:
		return notify.NewLogNotifier(a.logger), nil
	}
}

// close releases everything opened by buildApp in reverse order.
func (a *app) close(ctx context.Context) error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil

	if len(errs) > 0 {
		return fmt.Errorf("closing lmsctl: %w", errors.Join(errs...))
	}

	return nil
}
