package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"subgraph_setup_utils/internal/config"
	"subgraph_setup_utils/internal/logger"
	"subgraph_setup_utils/pkg/devnode"
)

type app struct {
	configPath string
	envFile    string
	endpoint   string

	node    *devnode.Client
	wallets *devnode.Wallets
	log     devnode.Logger

	registerer prometheus.Registerer
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithRegisterer(prometheus.DefaultRegisterer)
}

func newRootCmdWithRegisterer(reg prometheus.Registerer) *cobra.Command {
	a := &app{registerer: reg}

	root := &cobra.Command{
		Use:           "devnode",
		Short:         "Drive a local Ethereum development node over JSON-RPC",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to YAML configuration file (default: config.yml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Path to a dotenv file with DEVNODE_* overrides (default: .env if present)")
	root.PersistentFlags().StringVar(&a.endpoint, "url", "", "Node endpoint, overrides node.url from the configuration")

	root.AddCommand(
		a.blockNumberCmd(),
		a.mineCmd(),
		a.warpCmd(),
		a.blockCmd(),
		a.txBlockCmd(),
		a.chainIDCmd(),
		a.addressCmd(),
		a.snapshotCmd(),
		a.revertCmd(),
	)
	return root
}

func (a *app) setup() error {
	if err := config.LoadDotEnv(a.envFile); err != nil {
		return err
	}

	cfg, err := devnode.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.endpoint != "" {
		cfg.Node.URL = a.endpoint
	}

	log, err := logger.NewAppLogger(cfg.Logger)
	if err != nil {
		return err
	}
	a.log = log

	a.node, a.wallets, err = devnode.NewFromConfig(cfg, log, a.registerer)
	if err != nil {
		return err
	}
	log.Debug("Configuration loaded", "configFile", a.configPath, "endpoint", a.node.URL())
	return nil
}

// commandContext cancels on SIGINT/SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
