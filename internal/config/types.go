package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Default config values.
const (
	DefaultConfigFilePath     = "config.yml"
	DefaultNodeURL            = "http://localhost:8545/"
	DefaultNodeTimeoutSeconds = 0
	DefaultTestMnemonic       = "test test test test test test test test test test test junk"
	DefaultWalletIndex        = 0
	DefaultLoggerLevel        = LogLevelInfo
	DefaultLoggerFormat       = LogFormatText
	DefaultLoggerBackend      = LogBackendSlog
	DefaultMetricsNamespace   = "devnode"
)

// LogLevel defines the type for logger levels.
type LogLevel string

// LogFormat defines the type for logger output formats.
type LogFormat string

// LogBackend selects the logging library behind logger.AppLogger.
type LogBackend string

// Defines the supported logger levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Defines the supported logger output formats.
const (
	LogFormatJSON   LogFormat = "json"
	LogFormatText   LogFormat = "text"
	LogFormatLogfmt LogFormat = "logfmt" // zap backend only
)

// Defines the supported logger backends.
const (
	LogBackendSlog LogBackend = "slog"
	LogBackendZap  LogBackend = "zap"
)

// Config holds all configuration for the development node tooling.
type Config struct {
	Node    NodeConfig    `yaml:"node"`
	Wallet  WalletConfig  `yaml:"wallet"`
	Logger  LoggerConfig  `yaml:"logger"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// NodeConfig holds the JSON-RPC endpoint settings.
type NodeConfig struct {
	URL            string `yaml:"url" env:"DEVNODE_NODE_URL"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"DEVNODE_NODE_TIMEOUT_SECONDS"`
}

// WalletConfig holds mnemonic derivation settings.
type WalletConfig struct {
	Mnemonic     string `yaml:"mnemonic" env:"DEVNODE_MNEMONIC"`
	Passphrase   string `yaml:"passphrase" env:"DEVNODE_PASSPHRASE"`
	DefaultIndex uint32 `yaml:"default_index" env:"DEVNODE_DEFAULT_INDEX"`
}

// LoggerConfig holds all configuration related to logging.
type LoggerConfig struct {
	Level   LogLevel   `yaml:"level" env:"DEVNODE_LOG_LEVEL"`
	Format  LogFormat  `yaml:"format" env:"DEVNODE_LOG_FORMAT"`
	Backend LogBackend `yaml:"backend" env:"DEVNODE_LOG_BACKEND"`
}

// MetricsConfig holds the prometheus settings for RPC call metrics.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" env:"DEVNODE_METRICS_ENABLED"`
	Namespace string `yaml:"namespace" env:"DEVNODE_METRICS_NAMESPACE"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Node: NodeConfig{
			URL:            DefaultNodeURL,
			TimeoutSeconds: DefaultNodeTimeoutSeconds,
		},
		Wallet: WalletConfig{
			Mnemonic:     DefaultTestMnemonic,
			DefaultIndex: DefaultWalletIndex,
		},
		Logger: LoggerConfig{
			Level:   DefaultLoggerLevel,
			Format:  DefaultLoggerFormat,
			Backend: DefaultLoggerBackend,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultMetricsNamespace,
		},
	}
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if c.Node.URL == "" {
		return errors.New("node URL (config key: node.url) cannot be empty")
	}
	if _, err := url.Parse(c.Node.URL); err != nil {
		return fmt.Errorf("invalid node URL (config key: node.url): %w", err)
	}
	if c.Node.TimeoutSeconds < 0 {
		return errors.New("node timeout seconds (config key: node.timeout_seconds) cannot be negative")
	}

	if strings.TrimSpace(c.Wallet.Mnemonic) == "" {
		return errors.New("wallet mnemonic (config key: wallet.mnemonic) cannot be empty")
	}

	validLogLevels := map[LogLevel]bool{LogLevelDebug: true, LogLevelInfo: true, LogLevelWarn: true, LogLevelError: true}
	if !validLogLevels[LogLevel(strings.ToLower(string(c.Logger.Level)))] {
		return fmt.Errorf(
			"invalid logger level (config key: logger.level): '%s', must be one of: debug, info, warn, error",
			c.Logger.Level,
		)
	}
	format := LogFormat(strings.ToLower(string(c.Logger.Format)))
	validFormats := map[LogFormat]bool{LogFormatJSON: true, LogFormatText: true, LogFormatLogfmt: true}
	if !validFormats[format] {
		return fmt.Errorf(
			"invalid logger format (config key: logger.format): '%s', must be one of: json, text, logfmt",
			c.Logger.Format,
		)
	}
	backend := LogBackend(strings.ToLower(string(c.Logger.Backend)))
	validBackends := map[LogBackend]bool{LogBackendSlog: true, LogBackendZap: true}
	if !validBackends[backend] {
		return fmt.Errorf(
			"invalid logger backend (config key: logger.backend): '%s', must be one of: slog, zap",
			c.Logger.Backend,
		)
	}
	if format == LogFormatLogfmt && backend != LogBackendZap {
		return errors.New("logger format logfmt (config key: logger.format) requires logger.backend zap")
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return errors.New("metrics namespace (config key: metrics.namespace) cannot be empty when metrics are enabled")
	}

	return nil
}
