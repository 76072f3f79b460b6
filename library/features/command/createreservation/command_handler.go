package createreservation

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

// Result tells whether the new reservation is ready for collection right away.
type Result struct {
	shell.HandlerResult

	Outcome       core.AssignmentOutcome
	AccessionCode core.AccessionCodeString
}

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

func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var (
		isIdempotent bool
		appended     core.DomainEvents
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		isIdempotent, appended, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if isIdempotent {
		return Result{HandlerResult: shell.NewIdempotentResult(retryMetrics)}, err
	}

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	result := Result{HandlerResult: shell.NewSuccessResult(retryMetrics), Outcome: core.NoCopyAvailable}

	for _, event := range appended {
		if assigned, ok := event.(core.ReservationCopyAssigned); ok {
			result.Outcome = core.Assigned
			result.AccessionCode = assigned.AccessionCode
		}
	}

	return result, nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, core.DomainEvents, error) {
	filter := BuildEventFilter(command.ISBN, command.UserID)

	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return false, nil, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return false, nil, err
	}

	result := Decide(history, command)

	if !result.HasEventToAppend() {
		return true, nil, nil
	}

	event, additionalEvents, err := shell.StorableEventsForCommand(result.Events)
	if err != nil {
		return false, nil, err
	}

	if appendErr := h.eventStore.Append(ctx, filter, maxSequenceNumber, event, additionalEvents...); appendErr != nil {
		return false, nil, appendErr
	}

	return false, result.Events, result.HasError()
}
