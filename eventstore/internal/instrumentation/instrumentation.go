// Package instrumentation holds the logging, metrics and tracing shared by the SQL engines.
//
// Every engine operation is wrapped in an Operation that is started before the SQL is built and
// finished exactly once with Succeeded, Failed or Conflicted.
package instrumentation

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	SpanNameQuery  = "eventstore.query"
	SpanNameAppend = "eventstore.append"

	MetricQueryDuration        = "eventstore_query_duration_seconds"
	MetricAppendDuration       = "eventstore_append_duration_seconds"
	MetricEventCount           = "eventstore_operation_event_count"
	MetricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	MetricDatabaseErrors       = "eventstore_database_errors_total"

	OperationQuery  = "query"
	OperationAppend = "append"

	StatusSuccess             = "success"
	StatusError               = "error"
	StatusConcurrencyConflict = "concurrency_conflict"

	ErrorTypeBuildQuery         = "build_query"
	ErrorTypeDatabaseQuery      = "database_query"
	ErrorTypeRowScan            = "row_scan"
	ErrorTypeBuildStorableEvent = "build_storable_event"
	ErrorTypeDatabaseExec       = "database_exec"
	ErrorTypeRowsAffected       = "rows_affected"

	AttrEngine           = "engine"
	AttrOperation        = "operation"
	AttrStatus           = "status"
	AttrErrorType        = "error_type"
	AttrError            = "error"
	AttrEventCount       = "event_count"
	AttrMaxSequence      = "max_sequence"
	AttrExpectedSequence = "expected_sequence"
	AttrDurationMS       = "duration_ms"
	AttrQuery            = "query"

	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "eventstore operation: "
	logMsgOperationFailed     = "eventstore operation failed: "
	logMsgConcurrencyConflict = "eventstore operation: concurrency conflict detected"
)

// Observer bundles the optional collectors of one engine instance. A zero Observer is silent.
type Observer struct {
	Engine           string
	Logger           eventstore.Logger
	ContextualLogger eventstore.ContextualLogger
	Metrics          eventstore.MetricsCollector
	Tracing          eventstore.TracingCollector
}

// Operation is one running Query or Append.
type Operation struct {
	observer *Observer
	name     string
	start    time.Time
	span     eventstore.SpanContext
}

// Start opens a span for the operation and returns the context carrying it.
func (o *Observer) Start(ctx context.Context, operation string, attrs map[string]string) (context.Context, *Operation) {
	op := &Operation{observer: o, name: operation, start: time.Now()}

	if o.Tracing == nil {
		return ctx, op
	}

	spanAttrs := map[string]string{
		AttrEngine:    o.Engine,
		AttrOperation: operation,
	}
	for k, v := range attrs {
		spanAttrs[k] = v
	}

	ctx, op.span = o.Tracing.StartSpan(ctx, spanName(operation), spanAttrs)

	return ctx, op
}

// LogSQL logs the executed statement at debug level.
func (op *Operation) LogSQL(ctx context.Context, sqlQuery string) {
	op.debug(ctx, logMsgSQLExecuted+op.name, AttrDurationMS, ToMilliseconds(time.Since(op.start)), AttrQuery, sqlQuery)
}

// Succeeded finishes the operation after eventCount events were read or written.
func (op *Operation) Succeeded(ctx context.Context, eventCount int, maxSequenceNumber eventstore.MaxSequenceNumberUint) {
	duration := time.Since(op.start)
	labels := op.labels(StatusSuccess)

	op.recordDuration(ctx, duration, labels)
	op.recordValue(ctx, MetricEventCount, float64(eventCount), labels)

	op.finishSpan(StatusSuccess, map[string]string{
		AttrEventCount:  strconv.Itoa(eventCount),
		AttrMaxSequence: strconv.FormatUint(uint64(maxSequenceNumber), 10),
		AttrDurationMS:  formatMilliseconds(duration),
	})

	op.info(ctx, logMsgOperation+op.name+" completed", AttrEventCount, eventCount, AttrDurationMS, ToMilliseconds(duration))
}

// Failed finishes the operation with an infrastructure error.
func (op *Operation) Failed(ctx context.Context, errorType string, err error) {
	duration := time.Since(op.start)
	labels := op.labels(StatusError)

	op.recordDuration(ctx, duration, labels)

	errorLabels := op.labels(StatusError)
	errorLabels[AttrErrorType] = errorType
	op.incrementCounter(ctx, MetricDatabaseErrors, errorLabels)

	op.finishSpan(StatusError, map[string]string{
		AttrErrorType:  errorType,
		AttrError:      err.Error(),
		AttrDurationMS: formatMilliseconds(duration),
	})

	args := []any{AttrErrorType, errorType, AttrError, err.Error()}
	if op.observer.ContextualLogger != nil {
		op.observer.ContextualLogger.ErrorContext(ctx, logMsgOperationFailed+op.name, args...)
	} else if op.observer.Logger != nil {
		op.observer.Logger.Error(logMsgOperationFailed+op.name, args...)
	}
}

// Conflicted finishes an append that lost the optimistic concurrency check.
func (op *Operation) Conflicted(ctx context.Context, expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint) {
	duration := time.Since(op.start)
	labels := op.labels(StatusConcurrencyConflict)

	op.recordDuration(ctx, duration, labels)
	op.incrementCounter(ctx, MetricConcurrencyConflicts, labels)

	op.finishSpan(StatusConcurrencyConflict, map[string]string{
		AttrExpectedSequence: strconv.FormatUint(uint64(expectedMaxSequenceNumber), 10),
		AttrDurationMS:       formatMilliseconds(duration),
	})

	op.info(ctx, logMsgConcurrencyConflict, AttrExpectedSequence, expectedMaxSequenceNumber)
}

func (op *Operation) labels(status string) map[string]string {
	return map[string]string{
		AttrEngine:    op.observer.Engine,
		AttrOperation: op.name,
		AttrStatus:    status,
	}
}

func (op *Operation) recordDuration(ctx context.Context, duration time.Duration, labels map[string]string) {
	collector := op.observer.Metrics
	if collector == nil {
		return
	}

	if contextualCollector, ok := collector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, durationMetric(op.name), duration, labels)
	} else {
		collector.RecordDuration(durationMetric(op.name), duration, labels)
	}
}

func (op *Operation) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	collector := op.observer.Metrics
	if collector == nil {
		return
	}

	if contextualCollector, ok := collector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
	} else {
		collector.RecordValue(metric, value, labels)
	}
}

func (op *Operation) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	collector := op.observer.Metrics
	if collector == nil {
		return
	}

	if contextualCollector, ok := collector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
	} else {
		collector.IncrementCounter(metric, labels)
	}
}

func (op *Operation) finishSpan(status string, attrs map[string]string) {
	if op.observer.Tracing == nil || op.span == nil {
		return
	}

	op.observer.Tracing.FinishSpan(op.span, status, attrs)
}

func (op *Operation) debug(ctx context.Context, msg string, args ...any) {
	if op.observer.ContextualLogger != nil {
		op.observer.ContextualLogger.DebugContext(ctx, msg, args...)
	} else if op.observer.Logger != nil {
		op.observer.Logger.Debug(msg, args...)
	}
}

func (op *Operation) info(ctx context.Context, msg string, args ...any) {
	if op.observer.ContextualLogger != nil {
		op.observer.ContextualLogger.InfoContext(ctx, msg, args...)
	} else if op.observer.Logger != nil {
		op.observer.Logger.Info(msg, args...)
	}
}

// ToMilliseconds converts d to milliseconds rounded to 3 decimal places.
func ToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", float64(d.Nanoseconds())/1e6)
}

func spanName(operation string) string {
	if operation == OperationAppend {
		return SpanNameAppend
	}

	return SpanNameQuery
}

func durationMetric(operation string) string {
	if operation == OperationAppend {
		return MetricAppendDuration
	}

	return MetricQueryDuration
}
