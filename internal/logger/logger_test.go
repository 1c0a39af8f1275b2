package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subgraph_setup_utils/internal/config"
	"subgraph_setup_utils/internal/logger"
)

func TestNewAppLoggerTo_Backends(t *testing.T) {
	for _, backend := range []config.LogBackend{config.LogBackendSlog, config.LogBackendZap} {
		t.Run(string(backend), func(t *testing.T) {
			var buf bytes.Buffer
			log, err := logger.NewAppLoggerTo(config.LoggerConfig{
				Level:   config.LogLevelInfo,
				Format:  config.LogFormatJSON,
				Backend: backend,
			}, &buf)
			require.NoError(t, err)

			log.Debug("hidden")
			log.With("component", "node_client").Info("call", "method", "evm_mine")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, 1, "debug must be filtered at info level")

			var entry map[string]any
			require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
			assert.Equal(t, "call", entry["msg"])
			assert.Equal(t, "node_client", entry["component"])
			assert.Equal(t, "evm_mine", entry["method"])
		})
	}
}

func TestNewAppLoggerTo_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewAppLoggerTo(config.LoggerConfig{
		Level:   config.LogLevelWarn,
		Format:  config.LogFormatText,
		Backend: config.LogBackendZap,
	}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("node error", "code", -32000)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "node error")
}

func TestNewAppLoggerTo_Logfmt(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewAppLoggerTo(config.LoggerConfig{
		Format:  config.LogFormatLogfmt,
		Backend: config.LogBackendZap,
	}, &buf)
	require.NoError(t, err)

	log.With("component", "wallet_handler").Info("signer", "chainId", "31337")

	assert.Contains(t, buf.String(), "msg=signer")
	assert.Contains(t, buf.String(), "component=wallet_handler")
	assert.Contains(t, buf.String(), "chainId=31337")
}

func TestNewAppLoggerTo_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggerConfig
	}{
		{name: "level", cfg: config.LoggerConfig{Level: "trace", Format: config.LogFormatJSON}},
		{name: "format", cfg: config.LoggerConfig{Level: config.LogLevelInfo, Format: "xml"}},
		{name: "zap level", cfg: config.LoggerConfig{Level: "trace", Backend: config.LogBackendZap}},
		{name: "zap format", cfg: config.LoggerConfig{Format: "xml", Backend: config.LogBackendZap}},
		{name: "backend", cfg: config.LoggerConfig{Backend: "logrus"}},
		{name: "logfmt on slog", cfg: config.LoggerConfig{Format: config.LogFormatLogfmt, Backend: config.LogBackendSlog}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := logger.NewAppLoggerTo(tt.cfg, &bytes.Buffer{})
			assert.ErrorContains(t, err, "logger setup failed")
		})
	}
}

func TestDiscard(t *testing.T) {
	log := logger.Discard()
	assert.NotPanics(t, func() {
		log.With("k", "v").Error("dropped", "err", "boom")
	})
}

func TestAppLogger_LevelMethods(t *testing.T) {
	for _, backend := range []config.LogBackend{config.LogBackendSlog, config.LogBackendZap} {
		t.Run(string(backend), func(t *testing.T) {
			var buf bytes.Buffer
			log, err := logger.NewAppLoggerTo(config.LoggerConfig{
				Level:   config.LogLevelDebug,
				Format:  config.LogFormatJSON,
				Backend: backend,
			}, &buf)
			require.NoError(t, err)

			log.Debug("d")
			log.Info("i")
			log.Warn("w")
			log.Error("e")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, 4)

			want := []struct{ msg, level string }{{"d", "debug"}, {"i", "info"}, {"w", "warn"}, {"e", "error"}}
			for i, line := range lines {
				var entry map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &entry))
				assert.Equal(t, want[i].msg, entry["msg"])
				assert.Equal(t, want[i].level, strings.ToLower(entry["level"].(string)))
			}
		})
	}
}
