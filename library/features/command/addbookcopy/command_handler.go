package addbookcopy

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

type CommandHandler struct {
	eventStore   shell.EventStore
	retryOptions []shell.RetryOption
}

type Option func(*CommandHandler)

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

func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		isIdempotent, execErr = h.executeCommand(retryCtx, command)

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

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	filter := BuildEventFilter(command.ISBN, command.AccessionCode)

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
