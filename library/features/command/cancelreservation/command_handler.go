package cancelreservation

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

// Result reports where a released copy went.
type Result struct {
	shell.HandlerResult

	// HandOff is set if the released copy was assigned to the next reservation.
	HandOff *core.ReservationCopyAssigned

	notificationErr error
}

// NotificationFailure is the error of notifying the HandOff's user, if that failed.
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

// WithNotifier sets who tells the next reservation holder that the released copy is waiting.
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

// Handle cancels the reservation. Notification happens after a successful append and outside the retry loop,
// so a failed delivery is only reported in the Result.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	reservationRef, err := shell.ResolveReservation(ctx, h.eventStore, command.ReservationID)
	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(shell.RetryMetrics{})}, err
	}

	var (
		isIdempotent bool
		appended     core.DomainEvents
		state        *core.Circulation
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		isIdempotent, appended, state, execErr = h.executeCommand(retryCtx, reservationRef, command)

		return execErr
	}, h.retryOptions...)

	if isIdempotent {
		return Result{HandlerResult: shell.NewIdempotentResult(retryMetrics)}, err
	}

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	result := Result{HandlerResult: shell.NewSuccessResult(retryMetrics)}

	for _, event := range appended {
		if assigned, ok := event.(core.ReservationCopyAssigned); ok {
			result.HandOff = &assigned
		}
	}

	result.notificationErr = shell.NotifyHandOffs(ctx, h.notifier, appended, state)

	return result, nil
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	reservationRef shell.ReservationRef,
	command Command,
) (bool, core.DomainEvents, *core.Circulation, error) {

	filter := BuildEventFilter(reservationRef.ISBN)

	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return false, nil, nil, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return false, nil, nil, err
	}

	result := Decide(history, command)

	if !result.HasEventToAppend() {
		return true, nil, nil, nil
	}

	event, additionalEvents, err := shell.StorableEventsForCommand(result.Events)
	if err != nil {
		return false, nil, nil, err
	}

	if appendErr := h.eventStore.Append(ctx, filter, maxSequenceNumber, event, additionalEvents...); appendErr != nil {
		return false, nil, nil, appendErr
	}

	return false, result.Events, core.ProjectCirculation(history), result.HasError()
}
