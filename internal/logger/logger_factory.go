package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	zaplogfmt "github.com/jsternberg/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"subgraph_setup_utils/internal/config"
)

// NewAppLogger creates a new AppLogger writing to stderr with the configured backend, level and format.
func NewAppLogger(cfg config.LoggerConfig) (AppLogger, error) {
	return NewAppLoggerTo(cfg, os.Stderr)
}

// NewAppLoggerTo is like NewAppLogger but writes to out.
func NewAppLoggerTo(cfg config.LoggerConfig, out io.Writer) (AppLogger, error) {
	backend := config.LogBackend(strings.ToLower(string(cfg.Backend)))
	if backend == "" {
		backend = config.DefaultLoggerBackend
	}

	switch backend {
	case config.LogBackendSlog:
		return newSlogLogger(cfg, out)
	case config.LogBackendZap:
		return newZapLogger(cfg, out)
	default:
		return nil, fmt.Errorf("logger setup failed: unsupported logger backend: %s", cfg.Backend)
	}
}

func newSlogLogger(cfg config.LoggerConfig, out io.Writer) (AppLogger, error) {
	level, err := toSlogLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logger setup failed: %w", err)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler, err := toSlogHandler(cfg.Format, out, opts)
	if err != nil {
		return nil, fmt.Errorf("logger setup failed: %w", err)
	}

	slogLogger := slog.New(handler)
	slog.SetDefault(slogLogger)

	return NewSlogAdapter(slogLogger), nil
}

func newZapLogger(cfg config.LoggerConfig, out io.Writer) (AppLogger, error) {
	level, err := toZapLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logger setup failed: %w", err)
	}

	encoder, err := toZapEncoder(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("logger setup failed: %w", err)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)
	return NewZapAdapter(zap.New(core)), nil
}

// toSlogLevel converts a config.LogLevel to a slog.Level.
func toSlogLevel(level config.LogLevel) (slog.Level, error) {
	switch config.LogLevel(strings.ToLower(string(level))) {
	case config.LogLevelDebug:
		return slog.LevelDebug, nil
	case config.LogLevelInfo, "":
		return slog.LevelInfo, nil
	case config.LogLevelWarn:
		return slog.LevelWarn, nil
	case config.LogLevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported logger level: %s", level)
	}
}

// toSlogHandler creates a slog.Handler based on the config.LogFormat.
func toSlogHandler(format config.LogFormat, out io.Writer, opts *slog.HandlerOptions) (slog.Handler, error) {
	switch config.LogFormat(strings.ToLower(string(format))) {
	case config.LogFormatJSON:
		return slog.NewJSONHandler(out, opts), nil
	case config.LogFormatText, "":
		return slog.NewTextHandler(out, opts), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func toZapLevel(level config.LogLevel) (zapcore.Level, error) {
	switch config.LogLevel(strings.ToLower(string(level))) {
	case config.LogLevelDebug:
		return zapcore.DebugLevel, nil
	case config.LogLevelInfo, "":
		return zapcore.InfoLevel, nil
	case config.LogLevelWarn:
		return zapcore.WarnLevel, nil
	case config.LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unsupported logger level: %s", level)
	}
}

func toZapEncoder(format config.LogFormat) (zapcore.Encoder, error) {
	switch config.LogFormat(strings.ToLower(string(format))) {
	case config.LogFormatJSON:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	case config.LogFormatText, "":
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), nil
	case config.LogFormatLogfmt:
		return zaplogfmt.NewEncoder(zap.NewProductionEncoderConfig()), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
