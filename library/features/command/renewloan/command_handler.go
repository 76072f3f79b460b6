package renewloan

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

// Result describes the renewal that was recorded, or would be recorded in case of Preview.
type Result struct {
	shell.HandlerResult

	Renewals int
	DueDate  time.Time
	Forced   bool
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

// Preview runs the decision against the current state without appending anything.
// Business errors are returned as they would be by Handle, but no refusal is recorded.
func (h CommandHandler) Preview(ctx context.Context, command Command) (Result, error) {
	loanRef, err := shell.ResolveLoan(ctx, h.eventStore, command.LoanID)
	if err != nil {
		return Result{}, err
	}

	storableEvents, _, err := h.eventStore.Query(eventstore.WithStrongConsistency(ctx), BuildEventFilter(loanRef.ISBN, loanRef.UserID))
	if err != nil {
		return Result{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return Result{}, err
	}

	decision := Decide(history, command)
	if decisionErr := decision.HasError(); decisionErr != nil {
		return Result{}, decisionErr
	}

	return resultFrom(shell.HandlerResult{}, decision.Events), nil
}

// Handle records the renewal.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	loanRef, err := shell.ResolveLoan(ctx, h.eventStore, command.LoanID)
	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(shell.RetryMetrics{})}, err
	}

	var appended core.DomainEvents

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		appended, execErr = h.executeCommand(retryCtx, loanRef, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	return resultFrom(shell.NewSuccessResult(retryMetrics), appended), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, loanRef shell.LoanRef, command Command) (core.DomainEvents, error) {
	filter := BuildEventFilter(loanRef.ISBN, loanRef.UserID)

	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return nil, err
	}

	result := Decide(history, command)

	event, additionalEvents, err := shell.StorableEventsForCommand(result.Events)
	if err != nil {
		return nil, err
	}

	if appendErr := h.eventStore.Append(ctx, filter, maxSequenceNumber, event, additionalEvents...); appendErr != nil {
		return nil, appendErr
	}

	return result.Events, result.HasError()
}

func resultFrom(handlerResult shell.HandlerResult, events core.DomainEvents) Result {
	result := Result{HandlerResult: handlerResult}

	for _, event := range events {
		if renewed, ok := event.(core.LoanRenewed); ok {
			result.Renewals = renewed.Renewals
			result.Forced = renewed.Forced
			result.DueDate = core.Loan{RenewalDate: renewed.OccurredAt, LoanLengthDays: renewed.LoanLengthDays}.DueDate()
		}
	}

	return result
}
