package assigncopy

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

type Result struct {
	shell.HandlerResult

	Outcome       core.AssignmentOutcome
	AccessionCode core.AccessionCodeString

	notificationErr error
}

func (r Result) NotificationFailure() error {
	return r.notificationErr
}

type CommandHandler struct {
	eventStore   shell.EventStore
	notifier     shell.Notifier
	retryOptions []shell.RetryOption
}

type Option func(*CommandHandler)

func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithNotifier is used for commands with Notify set.
func WithNotifier(notifier shell.Notifier) Option {
	return func(h *CommandHandler) {
		h.notifier = notifier
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
		decision Decision
		state    *core.Circulation
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, state, execErr = h.executeCommand(retryCtx, reservationRef, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics), Outcome: decision.Outcome}, err
	}

	if decision.IsIdempotent() {
		return Result{HandlerResult: shell.NewIdempotentResult(retryMetrics), Outcome: decision.Outcome}, nil
	}

	result := Result{HandlerResult: shell.NewSuccessResult(retryMetrics), Outcome: decision.Outcome}
	for _, event := range decision.Events {
		if assigned, ok := event.(core.ReservationCopyAssigned); ok {
			result.AccessionCode = assigned.AccessionCode
		}
	}

	if command.Notify {
		result.notificationErr = shell.NotifyHandOffs(ctx, h.notifier, decision.Events, state)
	}

	return result, nil
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	reservationRef shell.ReservationRef,
	command Command,
) (Decision, *core.Circulation, error) {

	filter := BuildEventFilter(reservationRef.ISBN)

	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return Decision{}, nil, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return Decision{}, nil, err
	}

	decision := Decide(history, command)

	if !decision.HasEventToAppend() {
		return decision, nil, nil
	}

	event, additionalEvents, err := shell.StorableEventsForCommand(decision.Events)
	if err != nil {
		return Decision{}, nil, err
	}

	if appendErr := h.eventStore.Append(ctx, filter, maxSequenceNumber, event, additionalEvents...); appendErr != nil {
		return Decision{}, nil, appendErr
	}

	return decision, core.ProjectCirculation(history), decision.HasError()
}
