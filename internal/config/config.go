// Package config implements application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultDotEnvPath is the optional dotenv file read by LoadDotEnv when no path is given.
const DefaultDotEnvPath = ".env"

// LoadConfig loads the configuration from a YAML file on top of Default(), then
// applies DEVNODE_* environment overrides.
// An empty filePath reads DefaultConfigFilePath and tolerates its absence;
// an explicit path that does not exist is an error.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()

	loadPath := filePath
	if loadPath == "" {
		loadPath = DefaultConfigFilePath
	}

	fileBytes, err := os.ReadFile(loadPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || filePath != "" {
			return nil, fmt.Errorf("failed to read config file '%s': %w", loadPath, err)
		}
	} else if err := Parse(fileBytes, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", loadPath, err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Parse overlays the YAML document in data onto cfg. Sections and keys absent
// from the document keep their current values.
func Parse(data []byte, cfg *Config) error {
	type partialConfig struct {
		Node    *NodeConfig    `yaml:"node"`
		Wallet  *WalletConfig  `yaml:"wallet"`
		Logger  *LoggerConfig  `yaml:"logger"`
		Metrics *MetricsConfig `yaml:"metrics"`
	}
	pCfg := partialConfig{
		Node:    &cfg.Node,
		Wallet:  &cfg.Wallet,
		Logger:  &cfg.Logger,
		Metrics: &cfg.Metrics,
	}

	if err := yaml.Unmarshal(data, &pCfg); err != nil {
		return err
	}

	if cfg.Node.URL == "" {
		cfg.Node.URL = DefaultNodeURL
	}
	if cfg.Wallet.Mnemonic == "" {
		cfg.Wallet.Mnemonic = DefaultTestMnemonic
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = DefaultLoggerLevel
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = DefaultLoggerFormat
	}
	if cfg.Logger.Backend == "" {
		cfg.Logger.Backend = DefaultLoggerBackend
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	return nil
}

// ApplyEnv overrides cfg with the DEVNODE_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}
	return nil
}

// LoadDotEnv exports the variables of a dotenv file into the process environment
// without overriding variables that are already set. An empty path reads
// DefaultDotEnvPath and tolerates its absence.
func LoadDotEnv(path string) error {
	loadPath := path
	if loadPath == "" {
		loadPath = DefaultDotEnvPath
	}
	if err := godotenv.Load(loadPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == "" {
			return nil
		}
		return fmt.Errorf("failed to load dotenv file '%s': %w", loadPath, err)
	}
	return nil
}
