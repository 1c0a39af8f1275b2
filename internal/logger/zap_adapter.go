package logger

import (
	"go.uber.org/zap"
)

// zapAdapter implements AppLogger on top of a zap.SugaredLogger.
type zapAdapter struct {
	adaptee *zap.SugaredLogger
}

// NewZapAdapter creates a new AppLogger that wraps the given *zap.Logger.
func NewZapAdapter(zapLogger *zap.Logger) AppLogger {
	if zapLogger == nil {
		zapLogger = zap.L()
	}
	return &zapAdapter{adaptee: zapLogger.Sugar()}
}

func (z *zapAdapter) Debug(msg string, args ...any) {
	z.adaptee.Debugw(msg, args...)
}

func (z *zapAdapter) Info(msg string, args ...any) {
	z.adaptee.Infow(msg, args...)
}

func (z *zapAdapter) Warn(msg string, args ...any) {
	z.adaptee.Warnw(msg, args...)
}

func (z *zapAdapter) Error(msg string, args ...any) {
	z.adaptee.Errorw(msg, args...)
}

// With returns a new AppLogger with the given key-value pairs added to the context.
func (z *zapAdapter) With(args ...any) AppLogger {
	return &zapAdapter{adaptee: z.adaptee.With(args...)}
}
