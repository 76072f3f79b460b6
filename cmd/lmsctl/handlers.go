package main

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/library/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shell/observable"
)

// observedCommand wraps handler with logging, plus metrics and tracing when observability is enabled.
func observedCommand[C shell.Command, R shell.CommandResult](
	a *app,
	handler shell.CommandHandler[C, R],
) (shell.CommandHandler[C, R], error) {

	options := []observable.CommandOption[C, R]{
		observable.WithCommandContextualLogging[C, R](a.logger),
	}

	if a.observability != nil {
		options = append(options,
			observable.WithCommandMetrics[C, R](a.observability.MetricsCollector),
			observable.WithCommandTracing[C, R](a.observability.TracingCollector),
		)
	}

	return observable.NewCommandWrapper(handler, options...)
}

func observedQuery[Q shell.Query, R shell.QueryResult](
	a *app,
	handler shell.QueryHandler[Q, R],
) (shell.QueryHandler[Q, R], error) {

	options := []observable.QueryOption[Q, R]{
		observable.WithQueryContextualLogging[Q, R](a.logger),
	}

	if a.observability != nil {
		options = append(options,
			observable.WithQueryMetrics[Q, R](a.observability.MetricsCollector),
			observable.WithQueryTracing[Q, R](a.observability.TracingCollector),
		)
	}

	return observable.NewQueryWrapper(handler, options...)
}

func handleCommand[C shell.Command, R shell.CommandResult](
	ctx context.Context,
	a *app,
	handler shell.CommandHandler[C, R],
	command C,
) (R, error) {

	observed, err := observedCommand(a, handler)
	if err != nil {
		var zero R
		return zero, err
	}

	return observed.Handle(ctx, command)
}

func handleQuery[Q shell.Query, R shell.QueryResult](
	ctx context.Context,
	a *app,
	handler shell.QueryHandler[Q, R],
	query Q,
) (R, error) {

	observed, err := observedQuery(a, handler)
	if err != nil {
		var zero R
		return zero, err
	}

	return observed.Handle(ctx, query)
}
