package config

import (
	"io"
	"log/slog"
)

// InitLogger sets the default slog logger to JSON output on w.
// Accepts debug, info, warn and error; anything else means info.
func InitLogger(level string, w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: true,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
