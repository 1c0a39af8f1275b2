// Package application contains the wallet derivation and signer construction logic
// used by test harnesses against a development node.
package application

import (
	"context"
	"fmt"
	"math"

	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"

	"subgraph_setup_utils/internal/core/domain"
	"subgraph_setup_utils/internal/core/domain/client"
	"subgraph_setup_utils/internal/logger"
)

// DefaultTestMnemonic is the mnemonic shipped with common local development nodes.
const DefaultTestMnemonic = "test test test test test test test test test test test junk"

// DerivationPathFormat is the BIP-44 Ethereum account path; the last component is the wallet index.
const DerivationPathFormat = "m/44'/60'/0'/0/%d"

// WalletHandler derives keypairs from a mnemonic and builds signer clients bound to a node.
// It is immutable after construction and safe for concurrent use.
type WalletHandler struct {
	wallet       *hdwallet.Wallet
	node         client.NodeClient
	logger       logger.AppLogger
	defaultIndex uint32
}

type walletOptions struct {
	passphrase   string
	logger       logger.AppLogger
	defaultIndex uint32
}

// WalletOption configures a WalletHandler.
type WalletOption func(*walletOptions)

// WithPassphrase sets the optional BIP-39 passphrase.
func WithPassphrase(passphrase string) WalletOption {
	return func(o *walletOptions) {
		o.passphrase = passphrase
	}
}

// WithWalletLogger sets the logger used by the handler.
func WithWalletLogger(l logger.AppLogger) WalletOption {
	return func(o *walletOptions) {
		o.logger = l
	}
}

// WithDefaultIndex sets the index DefaultWallet derives. It defaults to 0.
func WithDefaultIndex(index uint32) WalletOption {
	return func(o *walletOptions) {
		o.defaultIndex = index
	}
}

// NewWalletHandler creates a handler deriving keys from mnemonic and signing for node.
func NewWalletHandler(mnemonic string, node client.NodeClient, opts ...WalletOption) (*WalletHandler, error) {
	if node == nil {
		return nil, fmt.Errorf("NewWalletHandler: %w: node client", domain.ErrNilDependency)
	}

	var o walletOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.NewSlogAdapter(nil)
	}

	var passOpt []string
	if o.passphrase != "" {
		passOpt = append(passOpt, o.passphrase)
	}
	wallet, err := hdwallet.NewFromMnemonic(mnemonic, passOpt...)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid mnemonic: %w", domain.ErrDerivation, err)
	}
	// Standard BIP-32 for keys with a leading zero byte.
	wallet.SetFixIssue172(true)

	return &WalletHandler{
		wallet:       wallet,
		node:         node,
		logger:       o.logger.With("component", "wallet_handler"),
		defaultIndex: o.defaultIndex,
	}, nil
}

// WithDefaultTestMnemonic creates a handler for DefaultTestMnemonic.
func WithDefaultTestMnemonic(node client.NodeClient, opts ...WalletOption) (*WalletHandler, error) {
	return NewWalletHandler(DefaultTestMnemonic, node, opts...)
}

// Node returns the node client the handler builds signers for.
func (h *WalletHandler) Node() client.NodeClient {
	return h.node
}

// DefaultIndex returns the index used by DefaultWallet.
func (h *WalletHandler) DefaultIndex() uint32 {
	return h.defaultIndex
}

// DefaultWallet derives the keypair at the configured default index.
func (h *WalletHandler) DefaultWallet() (domain.Keypair, error) {
	return h.GetWallet(h.defaultIndex)
}

// GetWallet derives the keypair at m/44'/60'/0'/0/{index}.
// Indexes in the hardened range are rejected.
func (h *WalletHandler) GetWallet(index uint32) (domain.Keypair, error) {
	if index > math.MaxInt32 {
		return domain.Keypair{}, fmt.Errorf("%w: index %d is outside the non-hardened range", domain.ErrDerivation, index)
	}

	path, err := hdwallet.ParseDerivationPath(fmt.Sprintf(DerivationPathFormat, index))
	if err != nil {
		return domain.Keypair{}, fmt.Errorf("%w: invalid derivation path: %w", domain.ErrDerivation, err)
	}

	account, err := h.wallet.Derive(path, false)
	if err != nil {
		return domain.Keypair{}, fmt.Errorf("%w: derive index %d: %w", domain.ErrDerivation, index, err)
	}

	key, err := h.wallet.PrivateKey(account)
	if err != nil {
		return domain.Keypair{}, fmt.Errorf("%w: private key for index %d: %w", domain.ErrDerivation, index, err)
	}

	keypair, err := domain.NewKeypair(key)
	if err != nil {
		return domain.Keypair{}, fmt.Errorf("%w: %w", domain.ErrDerivation, err)
	}

	h.logger.Debug("Derived wallet", "index", index, "address", keypair.Address().Hex())
	return keypair, nil
}

// GetClient resolves selector to a keypair, fetches the node chain id and binds both into a SignerClient.
// Any failure aborts construction.
func (h *WalletHandler) GetClient(ctx context.Context, selector domain.WalletSelector) (*SignerClient, error) {
	keypair, err := h.resolve(selector)
	if err != nil {
		return nil, err
	}

	chainID, err := h.node.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not fetch chain id: %w", err)
	}

	signer := newSignerClient(keypair, chainID, h.node)
	h.logger.Info("Signer client created",
		"address", keypair.Address().Hex(),
		"chainId", chainID.String(),
		"selector", selector.String(),
	)
	return signer, nil
}

func (h *WalletHandler) resolve(selector domain.WalletSelector) (domain.Keypair, error) {
	if keypair, ok := selector.Keypair(); ok {
		if keypair.IsZero() {
			return domain.Keypair{}, fmt.Errorf("%w: empty keypair", domain.ErrInvalidPrivateKey)
		}
		return keypair, nil
	}
	index, _ := selector.Index()
	return h.GetWallet(index)
}
