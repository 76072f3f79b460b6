package observable

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

// CommandWrapper instruments any command handler. It follows the same composition pattern as QueryWrapper.
type CommandWrapper[C shell.Command, R shell.CommandResult] struct {
	coreHandler      shell.CommandHandler[C, R]
	commandType      string
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// NewCommandWrapper takes the command type from the zero value of C.
func NewCommandWrapper[C shell.Command, R shell.CommandResult](
	coreHandler shell.CommandHandler[C, R],
	opts ...CommandOption[C, R],
) (*CommandWrapper[C, R], error) {

	var zeroCommand C

	wrapper := &CommandWrapper[C, R]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle delegates to the wrapped handler and records the outcome.
func (w *CommandWrapper[C, R]) Handle(ctx context.Context, command C) (R, error) {
	commandStart := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, w.tracingCollector, w.commandType)
	shell.LogInfo(ctx, w.logger, w.contextualLogger, shell.LogMsgCommandStarted, shell.LogAttrCommandType, w.commandType)

	result, err := w.coreHandler.Handle(ctx, command)
	duration := time.Since(commandStart)

	w.recordRetryMetrics(ctx, result.Handled())
	w.recordNotificationFailure(ctx, result)

	if err != nil {
		w.recordCommandError(ctx, err, duration, span)
		return result, err
	}

	outcome := shell.StatusSuccess
	if result.Handled().Idempotent {
		outcome = shell.StatusIdempotent
	}

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, outcome, duration)
	shell.FinishSpan(w.tracingCollector, span, outcome, duration, nil)
	shell.LogInfo(ctx, w.logger, w.contextualLogger, shell.LogMsgCommandCompleted,
		shell.LogAttrCommandType, w.commandType,
		shell.LogAttrBusinessOutcome, outcome,
		shell.LogAttrDurationMS, shell.ToMilliseconds(duration),
	)

	return result, nil
}

// CommandOption configures a CommandWrapper.
type CommandOption[C shell.Command, R shell.CommandResult] func(*CommandWrapper[C, R]) error

func WithCommandMetrics[C shell.Command, R shell.CommandResult](collector shell.MetricsCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.metricsCollector = collector
		return nil
	}
}

func WithCommandTracing[C shell.Command, R shell.CommandResult](collector shell.TracingCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.tracingCollector = collector
		return nil
	}
}

// WithCommandContextualLogging takes precedence over WithCommandLogging.
func WithCommandContextualLogging[C shell.Command, R shell.CommandResult](logger shell.ContextualLogger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.contextualLogger = logger
		return nil
	}
}

func WithCommandLogging[C shell.Command, R shell.CommandResult](logger shell.Logger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.logger = logger
		return nil
	}
}

func (w *CommandWrapper[C, R]) recordCommandError(ctx context.Context, err error, duration time.Duration, span shell.SpanContext) {
	status := shell.StatusOf(err)

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, duration)
	shell.FinishSpan(w.tracingCollector, span, status, duration, err)
	shell.LogError(ctx, w.logger, w.contextualLogger, shell.LogMsgCommandFailed,
		shell.LogAttrCommandType, w.commandType,
		shell.LogAttrStatus, status,
		shell.LogAttrError, err.Error(),
	)
}

func (w *CommandWrapper[C, R]) recordNotificationFailure(ctx context.Context, result R) {
	reporter, ok := any(result).(shell.ReportsNotificationFailure)
	if !ok || reporter.NotificationFailure() == nil {
		return
	}

	shell.RecordNotificationFailure(ctx, w.metricsCollector, w.commandType)
	shell.LogWarn(ctx, w.logger, w.contextualLogger, shell.LogMsgNotificationFailed,
		shell.LogAttrCommandType, w.commandType,
		shell.LogAttrError, reporter.NotificationFailure().Error(),
	)
}

func (w *CommandWrapper[C, R]) recordRetryMetrics(ctx context.Context, result shell.HandlerResult) {
	if w.metricsCollector == nil {
		return
	}

	if result.RetryAttempts > 1 {
		retryLabels := shell.BuildRetryLabels(w.commandType, result.RetryAttempts-1, result.LastErrorType)
		delayLabels := map[string]string{shell.LogAttrCommandType: w.commandType}

		if contextualCollector, ok := w.metricsCollector.(shell.ContextualMetricsCollector); ok {
			contextualCollector.IncrementCounterContext(ctx, shell.CommandHandlerRetriesMetric, retryLabels)
			contextualCollector.RecordDurationContext(ctx, shell.CommandHandlerRetryDelayMetric, result.TotalRetryDelay, delayLabels)
		} else {
			w.metricsCollector.IncrementCounter(shell.CommandHandlerRetriesMetric, retryLabels)
			w.metricsCollector.RecordDuration(shell.CommandHandlerRetryDelayMetric, result.TotalRetryDelay, delayLabels)
		}
	}

	if result.RetriesExhausted {
		exhaustedLabels := map[string]string{shell.LogAttrCommandType: w.commandType}

		if contextualCollector, ok := w.metricsCollector.(shell.ContextualMetricsCollector); ok {
			contextualCollector.IncrementCounterContext(ctx, shell.CommandHandlerMaxRetriesReachedMetric, exhaustedLabels)
		} else {
			w.metricsCollector.IncrementCounter(shell.CommandHandlerMaxRetriesReachedMetric, exhaustedLabels)
		}
	}
}
