package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/eventstore/memengine"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

var now = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

type notifierSpy struct {
	mu            sync.Mutex
	notifications []shell.Notification
}

func (s *notifierSpy) Notify(_ context.Context, notification shell.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = append(s.notifications, notification)

	return nil
}

func (s *notifierSpy) sent() []shell.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]shell.Notification(nil), s.notifications...)
}

type testEnv struct {
	app      *app
	notifier *notifierSpy
	clock    *shell.FixedClock
}

// givenApp returns an environment whose invocations share one in-memory store.
func givenApp() *testEnv {
	notifier := &notifierSpy{}
	clock := shell.NewFixedClock(now)

	next := 0
	ids := shell.IDGeneratorFunc(func() string {
		next++
		return fmt.Sprintf("id-%d", next)
	})

	return &testEnv{
		app: &app{
			store:    memengine.NewEventStore(),
			notifier: notifier,
			clock:    clock,
			ids:      ids,
			logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
		notifier: notifier,
		clock:    clock,
	}
}

func (e *testEnv) run(args ...string) (string, error) {
	var out, errOut bytes.Buffer

	root := newRootCommand(func(context.Context, rootFlags, io.Writer) (*app, error) {
		return e.app, nil
	}, &out, &errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

// mustRun runs args and decodes the JSON output.
func (e *testEnv) mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()

	out, err := e.run(args...)
	require.NoError(t, err, "lmsctl %v", args)

	decoded := map[string]any{}
	require.NoError(t, jsonAPI.UnmarshalFromString(out, &decoded), out)

	return decoded
}

func (e *testEnv) givenCatalog(t *testing.T) {
	t.Helper()

	e.mustRun(t, "user", "register", "user-1", "--name", "Ada", "--email", "ada@example.org")
	e.mustRun(t, "user", "register", "user-2", "--name", "Grace", "--email", "grace@example.org")
	e.mustRun(t, "book", "add", "978-0-14-143951-8",
		"--edition", "OL7353617M", "--work", "OL66554W", "--title", "Emma",
		"--author", "OL21594A=Jane Austen", "--published", "2003-04-29")
	e.mustRun(t, "copy", "add", "9780141439518", "1")
}
