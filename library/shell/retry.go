package shell

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

const (
	defaultMaxAttempts  = 6
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3

	ErrorTypeNone                    = "none"
	ErrorTypeConcurrencyConflict     = "concurrency_conflict"
	ErrorTypeContextCanceled         = "context_canceled"
	ErrorTypeContextDeadlineExceeded = "context_deadline_exceeded"
	ErrorTypeOther                   = "other"
)

var (
	ErrNilMetricsCollector = errors.New("metrics collector must not be nil")
	ErrEmptyCommandType    = errors.New("command type must not be empty")
	ErrInvalidMaxAttempts  = errors.New("max attempts must be positive")
	ErrNegativeBaseDelay   = errors.New("base delay must not be negative")
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

// RetryableFunc is one attempt of a command.
type RetryableFunc func(ctx context.Context) error

// RetryMetrics describes how a retry loop went.
type RetryMetrics struct {
	Attempts         int
	TotalDelay       time.Duration
	LastErrorType    string
	RetriesExhausted bool
}

type retryConfig struct {
	maxAttempts      int
	baseDelay        time.Duration
	jitterFactor     float64
	metricsCollector MetricsCollector
	commandType      string
}

// RetryWithExponentialBackoff runs fn until it succeeds, fails with a non-retryable error or
// maxAttempts is reached. Only eventstore.ErrConcurrencyConflict is retried.
//
// Default schedule: 0, 10, 20, 40, 80, 160 ms plus up to 30% jitter.
func RetryWithExponentialBackoff(
	ctx context.Context,
	fn RetryableFunc,
	options ...RetryOption,
) (RetryMetrics, error) {

	config := &retryConfig{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
	}

	for _, option := range options {
		if err := option(config); err != nil {
			return RetryMetrics{LastErrorType: ErrorTypeOther}, err
		}
	}

	metrics := RetryMetrics{}

	var lastErr error

	for attempt := 0; attempt < config.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := config.baseDelay * time.Duration(1<<(attempt-1))
			jitter := rand.Float64() * float64(delay) * config.jitterFactor //nolint:gosec // jitter needs no crypto rand
			backoffDelay := delay + time.Duration(jitter)

			recordRetryDelay(ctx, config, attempt, backoffDelay)

			select {
			case <-time.After(backoffDelay):
				metrics.TotalDelay += backoffDelay
			case <-ctx.Done():
				metrics.LastErrorType = ErrorTypeOf(ctx.Err())
				return metrics, ctx.Err()
			}
		}

		metrics.Attempts++

		lastErr = fn(ctx)
		metrics.LastErrorType = ErrorTypeOf(lastErr)

		if lastErr == nil || !isRetryableError(lastErr) {
			return metrics, lastErr
		}

		if attempt < config.maxAttempts-1 {
			recordRetryAttempt(ctx, config, attempt+1, lastErr)
		}
	}

	metrics.RetriesExhausted = true
	recordMaxRetriesReached(ctx, config, lastErr)

	return metrics, lastErr
}

func isRetryableError(err error) bool {
	return errors.Is(err, eventstore.ErrConcurrencyConflict)
}

// ErrorTypeOf classifies err for metric labels.
func ErrorTypeOf(err error) string {
	switch {
	case err == nil:
		return ErrorTypeNone
	case errors.Is(err, eventstore.ErrConcurrencyConflict):
		return ErrorTypeConcurrencyConflict
	case errors.Is(err, context.Canceled):
		return ErrorTypeContextCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeContextDeadlineExceeded
	default:
		return ErrorTypeOther
	}
}

func recordRetryDelay(ctx context.Context, config *retryConfig, attempt int, backoffDelay time.Duration) {
	if config.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		LogAttrCommandType:   config.commandType,
		LogAttrAttemptNumber: strconv.Itoa(attempt),
	}

	if contextualCollector, ok := config.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, CommandHandlerRetryDelayMetric, backoffDelay, labels)
	} else {
		config.metricsCollector.RecordDuration(CommandHandlerRetryDelayMetric, backoffDelay, labels)
	}
}

func recordRetryAttempt(ctx context.Context, config *retryConfig, attemptNumber int, lastErr error) {
	if config.metricsCollector == nil {
		return
	}

	labels := BuildRetryLabels(config.commandType, attemptNumber, ErrorTypeOf(lastErr))

	if contextualCollector, ok := config.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, CommandHandlerRetriesMetric, labels)
	} else {
		config.metricsCollector.IncrementCounter(CommandHandlerRetriesMetric, labels)
	}
}

func recordMaxRetriesReached(ctx context.Context, config *retryConfig, lastErr error) {
	if config.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		LogAttrCommandType:    config.commandType,
		LogAttrFinalErrorType: ErrorTypeOf(lastErr),
	}

	if contextualCollector, ok := config.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, CommandHandlerMaxRetriesReachedMetric, labels)
	} else {
		config.metricsCollector.IncrementCounter(CommandHandlerMaxRetriesReachedMetric, labels)
	}
}

// RetryOption configures RetryWithExponentialBackoff.
type RetryOption func(*retryConfig) error

func WithMaxAttempts(attempts int) RetryOption {
	return func(config *retryConfig) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		config.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the first backoff delay. Each further delay doubles it.
func WithBaseDelay(delay time.Duration) RetryOption {
	return func(config *retryConfig) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		config.baseDelay = delay

		return nil
	}
}

// WithJitterFactor adds up to factor * delay of random jitter, 0.0 to 1.0.
func WithJitterFactor(factor float64) RetryOption {
	return func(config *retryConfig) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		config.jitterFactor = factor

		return nil
	}
}

// WithRetryMetrics records each retry and backoff labeled with commandType.
func WithRetryMetrics(collector MetricsCollector, commandType string) RetryOption {
	return func(config *retryConfig) error {
		if collector == nil {
			return ErrNilMetricsCollector
		}

		if commandType == "" {
			return ErrEmptyCommandType
		}

		config.metricsCollector = collector
		config.commandType = commandType

		return nil
	}
}
