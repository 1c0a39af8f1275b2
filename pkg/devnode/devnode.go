// Package devnode is the public entry point for test harnesses that drive a local
// Ethereum development node: a JSON-RPC client with dev-only extensions, mnemonic
// wallet derivation and chain-id bound signers.
package devnode

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"subgraph_setup_utils/internal/adapters/rpc"
	"subgraph_setup_utils/internal/adapters/transport"
	"subgraph_setup_utils/internal/config"
	"subgraph_setup_utils/internal/core/application"
	"subgraph_setup_utils/internal/core/domain"
	"subgraph_setup_utils/internal/core/domain/client"
	"subgraph_setup_utils/internal/logger"
	"subgraph_setup_utils/internal/metrics"
)

type (
	// Node is the contract every node client satisfies.
	Node = client.NodeClient
	// Client is the JSON-RPC node client.
	Client = rpc.NodeAdapter
	// Provider is the HTTP transport a Client sends requests through.
	Provider = transport.HTTPProvider

	Block          = domain.Block
	Transaction    = domain.Transaction
	Receipt        = domain.Receipt
	Keypair        = domain.Keypair
	WalletSelector = domain.WalletSelector

	// Wallets derives keypairs from a mnemonic and builds signers.
	Wallets = application.WalletHandler
	// SignerClient is a keypair bound to a chain id and endpoint.
	SignerClient = application.SignerClient

	Config = config.Config
	Logger = logger.AppLogger
)

const (
	DefaultLocalEndpoint = rpc.DefaultLocalEndpoint
	DefaultTestMnemonic  = application.DefaultTestMnemonic
)

// LoadConfig reads a YAML configuration file, see config.LoadConfig.
func LoadConfig(path string) (*Config, error) {
	return config.LoadConfig(path)
}

// NewNode creates a client for endpoint. It panics on a malformed endpoint.
func NewNode(endpoint string, opts ...rpc.Option) *Client {
	return rpc.MustNewNodeAdapter(endpoint, opts...)
}

// NewNodeWithDefaultLocalEndpoint creates a client for http://localhost:8545/.
func NewNodeWithDefaultLocalEndpoint(opts ...rpc.Option) *Client {
	return rpc.NewWithDefaultLocalEndpoint(opts...)
}

// NewProvider creates an HTTP provider; a zero timeout keeps the transport default.
func NewProvider(endpoint string, timeout time.Duration) (*Provider, error) {
	var opts []transport.ProviderOption
	if timeout > 0 {
		opts = append(opts, transport.WithTimeout(timeout))
	}
	return transport.NewHTTPProvider(endpoint, opts...)
}

// NewNodeFromProvider creates a client sending through provider.
func NewNodeFromProvider(provider *Provider, opts ...rpc.Option) (*Client, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: provider", domain.ErrNilDependency)
	}
	return rpc.NewNodeAdapterFromProvider(provider, opts...)
}

// NewWallets creates a wallet handler for mnemonic. A nil node selects the default local endpoint.
func NewWallets(mnemonic string, node Node, opts ...application.WalletOption) (*Wallets, error) {
	if node == nil {
		node = NewNodeWithDefaultLocalEndpoint()
	}
	return application.NewWalletHandler(mnemonic, node, opts...)
}

// NewWalletsWithDefaultTestMnemonic is NewWallets with DefaultTestMnemonic.
func NewWalletsWithDefaultTestMnemonic(node Node, opts ...application.WalletOption) (*Wallets, error) {
	return NewWallets(DefaultTestMnemonic, node, opts...)
}

// Index selects the wallet derived at index.
func Index(index uint32) WalletSelector {
	return domain.SelectIndex(index)
}

// IndexPtr selects the wallet derived at *index, or index 0 when nil.
func IndexPtr(index *uint32) WalletSelector {
	return domain.SelectIndexPtr(index)
}

// Wallet selects an existing keypair.
func Wallet(keypair Keypair) WalletSelector {
	return domain.SelectKeypair(keypair)
}

// WalletPtr selects *keypair, or index 0 when nil.
func WalletPtr(keypair *Keypair) WalletSelector {
	return domain.SelectKeypairPtr(keypair)
}

// NewFromConfig builds a node client and a wallet handler from cfg.
// RPC metrics are registered with reg when cfg.Metrics.Enabled is set.
func NewFromConfig(cfg *Config, log Logger, reg prometheus.Registerer) (*Client, *Wallets, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("%w: config", domain.ErrNilDependency)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if log == nil {
		log = logger.NewSlogAdapter(nil)
	}

	opts := []rpc.Option{rpc.WithLogger(log)}
	if cfg.Node.TimeoutSeconds > 0 {
		timeout := time.Duration(cfg.Node.TimeoutSeconds) * time.Second
		opts = append(opts, rpc.WithProviderOptions(transport.WithTimeout(timeout)))
	}
	if cfg.Metrics.Enabled {
		collector, err := metrics.NewRPCCollector(cfg.Metrics.Namespace, reg)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, rpc.WithCallObserver(collector))
	}

	node, err := rpc.NewNodeAdapter(cfg.Node.URL, opts...)
	if err != nil {
		return nil, nil, err
	}

	wallets, err := application.NewWalletHandler(cfg.Wallet.Mnemonic, node,
		application.WithPassphrase(cfg.Wallet.Passphrase),
		application.WithWalletLogger(log),
		application.WithDefaultIndex(cfg.Wallet.DefaultIndex),
	)
	if err != nil {
		return nil, nil, err
	}
	return node, wallets, nil
}
