package observable

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

// QueryWrapper instruments any query handler.
type QueryWrapper[Q shell.Query, R shell.QueryResult] struct {
	coreHandler      shell.QueryHandler[Q, R]
	queryType        string
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// NewQueryWrapper takes the query type from the zero value of Q.
func NewQueryWrapper[Q shell.Query, R shell.QueryResult](
	coreHandler shell.QueryHandler[Q, R],
	opts ...QueryOption[Q, R],
) (*QueryWrapper[Q, R], error) {

	var zeroQuery Q

	wrapper := &QueryWrapper[Q, R]{
		coreHandler: coreHandler,
		queryType:   zeroQuery.QueryType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

func (w *QueryWrapper[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	queryStart := time.Now()
	ctx, span := shell.StartQuerySpan(ctx, w.tracingCollector, w.queryType)
	shell.LogInfo(ctx, w.logger, w.contextualLogger, shell.LogMsgQueryStarted, shell.LogAttrQueryType, w.queryType)

	result, err := w.coreHandler.Handle(ctx, query)
	duration := time.Since(queryStart)
	status := shell.StatusOf(err)

	shell.RecordQueryMetrics(ctx, w.metricsCollector, w.queryType, status, duration)
	shell.FinishSpan(w.tracingCollector, span, status, duration, err)

	if err != nil {
		shell.LogError(ctx, w.logger, w.contextualLogger, shell.LogMsgQueryFailed,
			shell.LogAttrQueryType, w.queryType,
			shell.LogAttrStatus, status,
			shell.LogAttrError, err.Error(),
		)

		return result, err
	}

	shell.LogInfo(ctx, w.logger, w.contextualLogger, shell.LogMsgQueryCompleted,
		shell.LogAttrQueryType, w.queryType,
		shell.LogAttrDurationMS, shell.ToMilliseconds(duration),
	)

	return result, nil
}

// QueryOption configures a QueryWrapper.
type QueryOption[Q shell.Query, R shell.QueryResult] func(*QueryWrapper[Q, R]) error

func WithQueryMetrics[Q shell.Query, R shell.QueryResult](collector shell.MetricsCollector) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.metricsCollector = collector
		return nil
	}
}

func WithQueryTracing[Q shell.Query, R shell.QueryResult](collector shell.TracingCollector) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.tracingCollector = collector
		return nil
	}
}

func WithQueryContextualLogging[Q shell.Query, R shell.QueryResult](logger shell.ContextualLogger) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.contextualLogger = logger
		return nil
	}
}

func WithQueryLogging[Q shell.Query, R shell.QueryResult](logger shell.Logger) QueryOption[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.logger = logger
		return nil
	}
}
