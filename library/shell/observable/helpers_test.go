package observable_test

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

type testCommand struct {
	ID string
}

func (testCommand) CommandType() string {
	return "TestCommand"
}

type testResult struct {
	shell.HandlerResult
	notificationErr error
}

func (r testResult) NotificationFailure() error {
	return r.notificationErr
}

type testCommandHandler struct {
	mu     sync.Mutex
	calls  []testCommand
	result testResult
	err    error
}

func newTestCommandHandler(result testResult, err error) *testCommandHandler {
	return &testCommandHandler{result: result, err: err}
}

func (h *testCommandHandler) Handle(_ context.Context, command testCommand) (testResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls = append(h.calls, command)

	return h.result, h.err
}

func (h *testCommandHandler) Calls() []testCommand {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]testCommand(nil), h.calls...)
}

type testQuery struct{}

func (testQuery) QueryType() string {
	return "TestQuery"
}

type testProjection struct {
	Count          int
	SequenceNumber uint
}

func (p testProjection) GetSequenceNumber() uint {
	return p.SequenceNumber
}

type testQueryHandler struct {
	result testProjection
	err    error
}

func (h testQueryHandler) Handle(context.Context, testQuery) (testProjection, error) {
	return h.result, h.err
}
