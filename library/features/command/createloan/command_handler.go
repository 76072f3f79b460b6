package createloan

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

// CommandHandler runs Resolve -> Query -> Unmarshal -> Decide -> Append with retry.
// Observability is added by wrapping it with observable.NewCommandWrapper.
type CommandHandler struct {
	eventStore   shell.EventStore
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

func NewCommandHandler(eventStore shell.EventStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore: eventStore,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle lends the copy. The returned error is either a business error from Decide or an infrastructure error.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	copyRef, err := shell.ResolveCopy(ctx, h.eventStore, command.AccessionCode)
	if err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, copyRef, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	if isIdempotent {
		return shell.NewIdempotentResult(retryMetrics), err
	}

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, copyRef shell.CopyRef, command Command) (bool, error) {
	filter := BuildEventFilter(copyRef.ISBN, command.UserID)

	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return false, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return false, err
	}

	result := Decide(history, command)

	if !result.HasEventToAppend() {
		return true, nil
	}

	event, additionalEvents, err := shell.StorableEventsForCommand(result.Events)
	if err != nil {
		return false, err
	}

	if appendErr := h.eventStore.Append(ctx, filter, maxSequenceNumber, event, additionalEvents...); appendErr != nil {
		return false, appendErr
	}

	return false, result.HasError()
}
