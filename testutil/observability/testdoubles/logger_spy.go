package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// LoggerSpy records log calls. It satisfies both eventstore.Logger and eventstore.ContextualLogger.
type LoggerSpy struct {
	records     []SpyLogRecord
	mu          sync.Mutex
	recordCalls bool
}

// SpyLogRecord represents a recorded log call. Context is nil for calls without context.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// NewLoggerSpy creates a new LoggerSpy. Set recordCalls to true to capture calls.
func NewLoggerSpy(recordCalls bool) *LoggerSpy {
	return &LoggerSpy{recordCalls: recordCalls}
}

func (s *LoggerSpy) Debug(msg string, args ...any) { s.record(nil, "debug", msg, args) }
func (s *LoggerSpy) Info(msg string, args ...any)  { s.record(nil, "info", msg, args) }
func (s *LoggerSpy) Warn(msg string, args ...any)  { s.record(nil, "warn", msg, args) }
func (s *LoggerSpy) Error(msg string, args ...any) { s.record(nil, "error", msg, args) }

func (s *LoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "debug", msg, args)
}

func (s *LoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "info", msg, args)
}

func (s *LoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "warn", msg, args)
}

func (s *LoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "error", msg, args)
}

func (s *LoggerSpy) record(ctx context.Context, level, msg string, args []any) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{
		Level:   level,
		Message: msg,
		Args:    append([]any(nil), args...),
		Context: ctx,
	})
}

// GetRecords returns a copy of all records.
func (s *LoggerSpy) GetRecords() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.records...)
}

// HasDebugLog checks if a debug log with the specified message exists.
func (s *LoggerSpy) HasDebugLog(message string) bool {
	return s.hasLog("debug", message)
}

// HasInfoLog checks if an info log with the specified message exists.
func (s *LoggerSpy) HasInfoLog(message string) bool {
	return s.hasLog("info", message)
}

// HasWarnLog checks if a warn log with the specified message exists.
func (s *LoggerSpy) HasWarnLog(message string) bool {
	return s.hasLog("warn", message)
}

// HasErrorLog checks if an error log with the specified message exists.
func (s *LoggerSpy) HasErrorLog(message string) bool {
	return s.hasLog("error", message)
}

// HasLogWithArg checks if any log with message carries key=value in its args.
func (s *LoggerSpy) HasLogWithArg(message string, key string, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Message != message {
			continue
		}

		for i := 0; i+1 < len(record.Args); i += 2 {
			if record.Args[i] == key && record.Args[i+1] == value {
				return true
			}
		}
	}

	return false
}

func (s *LoggerSpy) hasLog(level, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			return true
		}
	}

	return false
}

var (
	_ eventstore.Logger           = (*LoggerSpy)(nil)
	_ eventstore.ContextualLogger = (*LoggerSpy)(nil)
)
