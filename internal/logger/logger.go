// Package logger defines the structured logging contract shared by the node client,
// the wallet handler and the CLI, with slog and zap backends.
package logger

import (
	"io"
	"log/slog"
)

// AppLogger is a leveled, key-value structured logger.
type AppLogger interface {
	// Debug logs a message at DebugLevel.
	Debug(msg string, args ...any)

	// Info logs a message at InfoLevel.
	Info(msg string, args ...any)

	// Warn logs a message at WarnLevel.
	Warn(msg string, args ...any)

	// Error logs a message at ErrorLevel.
	Error(msg string, args ...any)

	// With returns a new logger with the given key-value pairs added to its context.
	With(args ...any) AppLogger
}

// Discard returns a logger that drops every entry.
func Discard() AppLogger {
	return NewSlogAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
