package oteladapters

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	"github.com/AntonStoeckl/library-circulation-go/eventstore"
)

// SlogBridgeLogger logs through log/slog. Built with NewSlogBridgeLogger it goes through the
// otelslog bridge and gets trace/span correlation for free.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger creates a logger that emits to the global OpenTelemetry LoggerProvider.
func NewSlogBridgeLogger(name string, options ...otelslog.Option) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name, options...)}
}

// NewSlogLogger wraps a plain slog.Handler. There is no trace correlation unless the handler adds it.
func NewSlogLogger(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(handler)}
}

func (l *SlogBridgeLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogBridgeLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogBridgeLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogBridgeLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

var (
	_ eventstore.Logger           = (*SlogBridgeLogger)(nil)
	_ eventstore.ContextualLogger = (*SlogBridgeLogger)(nil)
)

// OTelLogger emits records through the OpenTelemetry log API directly.
type OTelLogger struct {
	logger log.Logger
}

func NewOTelLogger(logger log.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

func (l *OTelLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityDebug, msg, args)
}

func (l *OTelLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityInfo, msg, args)
}

func (l *OTelLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityWarn, msg, args)
}

func (l *OTelLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityError, msg, args)
}

func (l *OTelLogger) emit(ctx context.Context, severity log.Severity, msg string, args []any) {
	record := log.Record{}
	record.SetSeverity(severity)
	record.SetBody(log.StringValue(msg))

	// args are slog style key/value pairs, a dangling key is dropped
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}

		record.AddAttributes(keyValue(key, args[i+1]))
	}

	l.logger.Emit(ctx, record)
}

func keyValue(key string, value any) log.KeyValue {
	switch v := value.(type) {
	case string:
		return log.String(key, v)
	case int:
		return log.Int(key, v)
	case int64:
		return log.Int64(key, v)
	case uint:
		return log.Int64(key, int64(v))
	case float64:
		return log.Float64(key, v)
	case bool:
		return log.Bool(key, v)
	case error:
		return log.String(key, v.Error())
	default:
		return log.String(key, slog.AnyValue(v).String())
	}
}

var _ eventstore.ContextualLogger = (*OTelLogger)(nil)
