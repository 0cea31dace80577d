// Package logger provides structured logging for the newsletter engine.
//
// It is a thin layer over log/slog: New returns a JSON logger for normal
// operation, NewNope a discard logger for tests and unconfigured callers,
// and NewWithSentry routes warnings and errors to Sentry in addition to
// stdout, falling back gracefully when no DSN is configured.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON-formatted logger writing to stdout at Info level.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
