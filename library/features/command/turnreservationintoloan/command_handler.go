package turnreservationintoloan

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

// Result describes the started loan.
type Result struct {
	shell.HandlerResult

	LoanID        core.LoanIDString
	AccessionCode core.AccessionCodeString
	DueDate       time.Time
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
	reservationRef, err := shell.ResolveReservation(ctx, h.eventStore, command.ReservationID)
	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(shell.RetryMetrics{})}, err
	}

	var (
		isIdempotent bool
		appended     core.DomainEvents
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		isIdempotent, appended, execErr = h.executeCommand(retryCtx, reservationRef, command)

		return execErr
	}, h.retryOptions...)

	if isIdempotent {
		return Result{HandlerResult: shell.NewIdempotentResult(retryMetrics), LoanID: command.LoanID}, err
	}

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	result := Result{HandlerResult: shell.NewSuccessResult(retryMetrics), LoanID: command.LoanID}

	for _, event := range appended {
		if started, ok := event.(core.LoanStarted); ok {
			result.AccessionCode = started.AccessionCode
			result.DueDate = core.Day(started.OccurredAt).AddDate(0, 0, started.LoanLengthDays)
		}
	}

	return result, nil
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	reservationRef shell.ReservationRef,
	command Command,
) (bool, core.DomainEvents, error) {

	filter := BuildEventFilter(reservationRef.ISBN, reservationRef.UserID)

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
