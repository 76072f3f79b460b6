package observable_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
	"github.com/AntonStoeckl/library-circulation-go/library/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/testutil/observability/testdoubles"
)

type spies struct {
	metrics *testdoubles.MetricsCollectorSpy
	tracing *testdoubles.TracingCollectorSpy
	logger  *testdoubles.LoggerSpy
}

func givenWrappedCommandHandler(t *testing.T, handler *testCommandHandler) (*observable.CommandWrapper[testCommand, testResult], spies) {
	t.Helper()

	s := spies{
		metrics: testdoubles.NewMetricsCollectorSpy(true),
		tracing: testdoubles.NewTracingCollectorSpy(true),
		logger:  testdoubles.NewLoggerSpy(true),
	}

	wrapper, err := observable.NewCommandWrapper[testCommand, testResult](
		handler,
		observable.WithCommandMetrics[testCommand, testResult](s.metrics),
		observable.WithCommandTracing[testCommand, testResult](s.tracing),
		observable.WithCommandContextualLogging[testCommand, testResult](s.logger),
	)
	require.NoError(t, err)

	return wrapper, s
}

func Test_CommandWrapper_Handle_Success(t *testing.T) {
	// arrange
	expected := testResult{HandlerResult: shell.HandlerResult{RetryAttempts: 1, LastErrorType: shell.ErrorTypeNone}}
	handler := newTestCommandHandler(expected, nil)
	wrapper, s := givenWrappedCommandHandler(t, handler)

	// act
	result, err := wrapper.Handle(context.Background(), testCommand{ID: "c-1"})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	assert.Equal(t, []testCommand{{ID: "c-1"}}, handler.Calls())
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).
		WithLabel(shell.LogAttrCommandType, "TestCommand").
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, s.metrics.HasDurationRecordForMetric(shell.CommandHandlerDurationMetric).
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, s.tracing.HasSpanRecordForName(shell.SpanNameCommandHandle).
		WithStartAttribute(shell.LogAttrCommandType, "TestCommand").
		WithStatus(shell.StatusSuccess).
		Assert())
	assert.True(t, s.logger.HasInfoLog(shell.LogMsgCommandStarted))
	assert.True(t, s.logger.HasLogWithArg(shell.LogMsgCommandCompleted, shell.LogAttrBusinessOutcome, shell.StatusSuccess))
	assert.Equal(t, 0, s.metrics.CountCounterRecordsForMetric(shell.CommandHandlerRetriesMetric))
}

func Test_CommandWrapper_Handle_RecordsIdempotentOutcome(t *testing.T) {
	// arrange
	handler := newTestCommandHandler(testResult{HandlerResult: shell.HandlerResult{Idempotent: true, RetryAttempts: 1}}, nil)
	wrapper, s := givenWrappedCommandHandler(t, handler)

	// act
	_, err := wrapper.Handle(context.Background(), testCommand{})

	// assert
	assert.NoError(t, err)
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerIdempotentMetric).
		WithLabel(shell.LogAttrCommandType, "TestCommand").
		Assert())
	assert.True(t, s.tracing.HasSpanRecordForName(shell.SpanNameCommandHandle).WithStatus(shell.StatusIdempotent).Assert())
}

func Test_CommandWrapper_Handle_RecordsRetries(t *testing.T) {
	// arrange
	handler := newTestCommandHandler(testResult{HandlerResult: shell.HandlerResult{
		RetryAttempts:    6,
		TotalRetryDelay:  310 * time.Millisecond,
		LastErrorType:    shell.ErrorTypeConcurrencyConflict,
		RetriesExhausted: true,
	}}, eventstore.ErrConcurrencyConflict)
	wrapper, s := givenWrappedCommandHandler(t, handler)

	// act
	_, err := wrapper.Handle(context.Background(), testCommand{})

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerRetriesMetric).
		WithLabel(shell.LogAttrAttemptNumber, "5").
		WithLabel(shell.LogAttrErrorType, shell.ErrorTypeConcurrencyConflict).
		Assert())
	assert.True(t, s.metrics.HasDurationRecordForMetric(shell.CommandHandlerRetryDelayMetric).Assert())
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerMaxRetriesReachedMetric).Assert())
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerConcurrencyConflictMetric).Assert())
}

func Test_CommandWrapper_Handle_ClassifiesErrors(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus string
	}{
		{name: "business error", err: core.MaxLoansError{UserID: "u", LoansAllowed: 3}, expectedStatus: shell.StatusError},
		{name: "canceled", err: fmt.Errorf("query: %w", context.Canceled), expectedStatus: shell.StatusCanceled},
		{name: "timeout", err: context.DeadlineExceeded, expectedStatus: shell.StatusTimeout},
		{name: "conflict", err: errors.Join(eventstore.ErrConcurrencyConflict), expectedStatus: shell.StatusConcurrencyConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			wrapper, s := givenWrappedCommandHandler(t, newTestCommandHandler(testResult{}, tc.err))

			// act
			_, err := wrapper.Handle(context.Background(), testCommand{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).WithStatus(tc.expectedStatus).Assert())
			assert.True(t, s.tracing.HasSpanRecordForName(shell.SpanNameCommandHandle).WithStatus(tc.expectedStatus).Assert())
			assert.True(t, s.logger.HasErrorLog(shell.LogMsgCommandFailed))
		})
	}
}

func Test_CommandWrapper_Handle_ReportsNotificationFailure_WithoutFailingTheCommand(t *testing.T) {
	// arrange
	handler := newTestCommandHandler(testResult{
		HandlerResult:   shell.HandlerResult{RetryAttempts: 1},
		notificationErr: errors.New("redis unavailable"),
	}, nil)
	wrapper, s := givenWrappedCommandHandler(t, handler)

	// act
	_, err := wrapper.Handle(context.Background(), testCommand{})

	// assert
	assert.NoError(t, err)
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerNotificationFailedMetric).Assert())
	assert.True(t, s.logger.HasWarnLog(shell.LogMsgNotificationFailed))
	assert.True(t, s.metrics.HasCounterRecordForMetric(shell.CommandHandlerCallsMetric).WithStatus(shell.StatusSuccess).Assert())
}

func Test_CommandWrapper_Handle_WorksWithoutCollectors(t *testing.T) {
	// arrange
	wrapper, err := observable.NewCommandWrapper[testCommand, testResult](newTestCommandHandler(testResult{}, nil))
	require.NoError(t, err)

	// act & assert
	assert.NotPanics(t, func() {
		_, _ = wrapper.Handle(context.Background(), testCommand{})
	})
}

func Test_CommandWrapper_Handle_FallsBackToPlainLogger(t *testing.T) {
	// arrange
	logger := testdoubles.NewLoggerSpy(true)
	wrapper, err := observable.NewCommandWrapper[testCommand, testResult](
		newTestCommandHandler(testResult{}, nil),
		observable.WithCommandLogging[testCommand, testResult](logger),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), testCommand{})

	// assert
	assert.NoError(t, err)
	assert.True(t, logger.HasInfoLog(shell.LogMsgCommandCompleted))
}
