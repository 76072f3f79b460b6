package shell

import "time"

// HandlerResult is the outcome of a command handler execution. It captures the idempotency of the
// decision and how the retry loop went, without coupling handlers to an observability backend.
type HandlerResult struct {
	// Idempotent is true when nothing had to change.
	Idempotent bool

	// RetryAttempts is the total number of attempts (1 without retries).
	RetryAttempts int

	// TotalRetryDelay only counts the backoff sleeps.
	TotalRetryDelay time.Duration

	// LastErrorType is "none", "concurrency_conflict", "context_canceled", "context_deadline_exceeded" or "other".
	LastErrorType string

	// RetriesExhausted is true when every attempt ended in a retryable error.
	RetriesExhausted bool
}

// Handled makes HandlerResult and every result embedding it a CommandResult.
func (r HandlerResult) Handled() HandlerResult {
	return r
}

func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(false, retryMetrics)
}

func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(true, retryMetrics)
}

// NewErrorResult keeps the retry metadata of a failed execution.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(false, retryMetrics)
}

func newHandlerResult(idempotent bool, retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
