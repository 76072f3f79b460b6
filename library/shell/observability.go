package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	CommandHandlerDurationMetric            = "commandhandler_handle_duration_seconds"
	CommandHandlerCallsMetric               = "commandhandler_handle_calls_total"
	CommandHandlerIdempotentMetric          = "commandhandler_idempotent_operations_total"
	CommandHandlerCanceledMetric            = "commandhandler_canceled_operations_total"
	CommandHandlerTimeoutMetric             = "commandhandler_timeout_operations_total"
	CommandHandlerConcurrencyConflictMetric = "commandhandler_concurrency_conflicts_total"
	CommandHandlerNotificationFailedMetric  = "commandhandler_notification_failures_total"

	// CommandHandlerRetriesMetric is labeled with command_type, attempt_number and error_type.
	CommandHandlerRetriesMetric = "commandhandler_retries_total"

	// CommandHandlerRetryDelayMetric is labeled with command_type and attempt_number.
	CommandHandlerRetryDelayMetric = "commandhandler_retry_delay_seconds"

	// CommandHandlerMaxRetriesReachedMetric is labeled with command_type and final_error_type.
	CommandHandlerMaxRetriesReachedMetric = "commandhandler_max_retries_reached_total"

	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"
	QueryHandlerCallsMetric    = "queryhandler_handle_calls_total"
	QueryHandlerCanceledMetric = "queryhandler_canceled_operations_total"
	QueryHandlerTimeoutMetric  = "queryhandler_timeout_operations_total"

	StatusSuccess             = "success"
	StatusError               = "error"
	StatusIdempotent          = "idempotent"
	StatusCanceled            = "canceled"
	StatusTimeout             = "timeout"
	StatusConcurrencyConflict = "concurrency_conflict"

	LogMsgCommandStarted      = "command handler started"
	LogMsgCommandCompleted    = "command handler completed"
	LogMsgCommandFailed       = "command handler failed"
	LogMsgNotificationFailed  = "command handler notification failed"
	LogMsgQueryStarted        = "query handler started"
	LogMsgQueryCompleted      = "query handler completed"
	LogMsgQueryFailed         = "query handler failed"
	LogMsgNotificationSent    = "notification sent"
	LogMsgNotificationSkipped = "notification skipped"

	LogAttrCommandType     = "command_type"
	LogAttrQueryType       = "query_type"
	LogAttrStatus          = "status"
	LogAttrDurationMS      = "duration_ms"
	LogAttrBusinessOutcome = "business_outcome"
	LogAttrError           = "error"
	LogAttrEventCount      = "event_count"
	LogAttrAttemptNumber   = "attempt_number"
	LogAttrErrorType       = "error_type"
	LogAttrFinalErrorType  = "final_error_type"
	LogAttrUserID          = "user_id"
	LogAttrSubject         = "subject"

	SpanNameCommandHandle = "commandhandler.handle"
	SpanNameQueryHandle   = "queryhandler.handle"
)

// Aliases of the eventstore observability interfaces, so handlers and wrappers share one set.

type MetricsCollector = eventstore.MetricsCollector
type ContextualMetricsCollector = eventstore.ContextualMetricsCollector
type TracingCollector = eventstore.TracingCollector
type SpanContext = eventstore.SpanContext
type ContextualLogger = eventstore.ContextualLogger
type Logger = eventstore.Logger

func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

func BuildQueryLabels(queryType, status string) map[string]string {
	return map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
}

func BuildRetryLabels(commandType string, attemptNumber int, errorType string) map[string]string {
	return map[string]string{
		LogAttrCommandType:   commandType,
		LogAttrAttemptNumber: strconv.Itoa(attemptNumber),
		LogAttrErrorType:     errorType,
	}
}

// ToMilliseconds converts d to fractional milliseconds.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// StatusOf maps a handler error to its metric status.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	case IsConcurrencyConflictError(err):
		return StatusConcurrencyConflict
	default:
		return StatusError
	}
}

// RecordCommandMetrics records the duration and call count of a command, plus the counter of its
// special status if there is one.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	duration time.Duration,
) {

	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)
	recordDuration(ctx, collector, CommandHandlerDurationMetric, duration, labels)
	incrementCounter(ctx, collector, CommandHandlerCallsMetric, labels)

	statusMetrics := map[string]string{
		StatusIdempotent:          CommandHandlerIdempotentMetric,
		StatusCanceled:            CommandHandlerCanceledMetric,
		StatusTimeout:             CommandHandlerTimeoutMetric,
		StatusConcurrencyConflict: CommandHandlerConcurrencyConflictMetric,
	}

	if metric, ok := statusMetrics[status]; ok {
		incrementCounter(ctx, collector, metric, BuildCommandLabels(commandType, status))
	}
}

// RecordNotificationFailure counts notifications that could not be delivered after a successful append.
func RecordNotificationFailure(ctx context.Context, collector MetricsCollector, commandType string) {
	if collector == nil {
		return
	}

	incrementCounter(ctx, collector, CommandHandlerNotificationFailedMetric, map[string]string{LogAttrCommandType: commandType})
}

func RecordQueryMetrics(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	status string,
	duration time.Duration,
) {

	if collector == nil {
		return
	}

	labels := BuildQueryLabels(queryType, status)
	recordDuration(ctx, collector, QueryHandlerDurationMetric, duration, labels)
	incrementCounter(ctx, collector, QueryHandlerCallsMetric, labels)

	switch status {
	case StatusCanceled:
		incrementCounter(ctx, collector, QueryHandlerCanceledMetric, BuildQueryLabels(queryType, status))
	case StatusTimeout:
		incrementCounter(ctx, collector, QueryHandlerTimeoutMetric, BuildQueryLabels(queryType, status))
	}
}

func recordDuration(ctx context.Context, collector MetricsCollector, metric string, duration time.Duration, labels map[string]string) {
	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
	} else {
		collector.RecordDuration(metric, duration, labels)
	}
}

func incrementCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
	} else {
		collector.IncrementCounter(metric, labels)
	}
}

// StartCommandSpan returns ctx and a nil span if tracing is disabled.
func StartCommandSpan(ctx context.Context, tracingCollector TracingCollector, commandType string) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameCommandHandle, map[string]string{LogAttrCommandType: commandType})
}

// StartQuerySpan returns ctx and a nil span if tracing is disabled.
func StartQuerySpan(ctx context.Context, tracingCollector TracingCollector, queryType string) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameQueryHandle, map[string]string{LogAttrQueryType: queryType})
}

// FinishSpan ends a command or query span with status and, if present, the error.
func FinishSpan(tracingCollector TracingCollector, span SpanContext, status string, duration time.Duration, err error) {
	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: formatDurationMS(duration),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	tracingCollector.FinishSpan(span, status, attrs)
}

// LogInfo prefers the contextual logger so trace ids end up in the record.
func LogInfo(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Info(msg, args...)
	}
}

func LogWarn(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.WarnContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Warn(msg, args...)
	}
}

func LogError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Error(msg, args...)
	}
}

func formatDurationMS(duration time.Duration) string {
	return fmt.Sprintf("%.2f", ToMilliseconds(duration))
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func IsConcurrencyConflictError(err error) bool {
	return errors.Is(err, eventstore.ErrConcurrencyConflict)
}
