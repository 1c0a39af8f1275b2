package logger

import (
	"log/slog"
)

// slogAdapter implements AppLogger on top of a *slog.Logger.
type slogAdapter struct {
	adaptee *slog.Logger
}

var (
	_ AppLogger = (*slogAdapter)(nil)
	_ AppLogger = (*zapAdapter)(nil)
)

// NewSlogAdapter wraps slogLogger; nil selects slog.Default().
func NewSlogAdapter(slogLogger *slog.Logger) AppLogger {
	if slogLogger == nil {
		slogLogger = slog.Default()
	}
	return &slogAdapter{adaptee: slogLogger}
}

// Debug logs a message at DebugLevel.
func (s *slogAdapter) Debug(msg string, args ...any) {
	s.adaptee.Debug(msg, args...)
}

// Info logs a message at InfoLevel.
func (s *slogAdapter) Info(msg string, args ...any) {
	s.adaptee.Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func (s *slogAdapter) Warn(msg string, args ...any) {
	s.adaptee.Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func (s *slogAdapter) Error(msg string, args ...any) {
	s.adaptee.Error(msg, args...)
}

// With returns a new AppLogger with the given arguments added to the context.
func (s *slogAdapter) With(args ...any) AppLogger {
	return &slogAdapter{adaptee: s.adaptee.With(args...)}
}
