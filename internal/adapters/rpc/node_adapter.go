// Package rpc implements the development node client using JSON-RPC communication over HTTP.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"subgraph_setup_utils/internal/adapters/transport"
	"subgraph_setup_utils/internal/core/domain"
	"subgraph_setup_utils/internal/core/domain/client"
	"subgraph_setup_utils/internal/logger"
)

// DefaultLocalEndpoint is the conventional endpoint of a local development node.
const DefaultLocalEndpoint = "http://localhost:8545/"

// CallObserver receives the outcome of every JSON-RPC call.
type CallObserver interface {
	ObserveCall(method string, duration time.Duration, err error)
}

// NodeAdapter implements the client.NodeClient interface by making JSON-RPC calls to a node.
// It holds no mutable state besides the request id counter and is safe for concurrent use.
type NodeAdapter struct {
	transport client.Transport
	logger    logger.AppLogger
	observer  CallObserver
	nextID    atomic.Uint64
}

// Compile-time check to ensure NodeAdapter implements client.NodeClient
var _ client.NodeClient = (*NodeAdapter)(nil)

type adapterOptions struct {
	logger       logger.AppLogger
	observer     CallObserver
	providerOpts []transport.ProviderOption
}

// Option configures a NodeAdapter.
type Option func(*adapterOptions)

// WithLogger sets the logger used for request tracing.
func WithLogger(l logger.AppLogger) Option {
	return func(o *adapterOptions) {
		o.logger = l
	}
}

// WithCallObserver registers an observer notified after every call.
func WithCallObserver(obs CallObserver) Option {
	return func(o *adapterOptions) {
		o.observer = obs
	}
}

// WithProviderOptions passes options to the HTTP provider created by NewNodeAdapter.
func WithProviderOptions(opts ...transport.ProviderOption) Option {
	return func(o *adapterOptions) {
		o.providerOpts = append(o.providerOpts, opts...)
	}
}

// NewNodeAdapter creates a node client for endpoint. A malformed endpoint returns domain.ErrInvalidEndpoint.
func NewNodeAdapter(endpoint string, opts ...Option) (*NodeAdapter, error) {
	o := collectOptions(opts)
	provider, err := transport.NewHTTPProvider(endpoint, o.providerOpts...)
	if err != nil {
		return nil, fmt.Errorf("could not instantiate HTTP provider: %w", err)
	}
	return newNodeAdapter(provider, o), nil
}

// MustNewNodeAdapter is like NewNodeAdapter but panics on a malformed endpoint.
func MustNewNodeAdapter(endpoint string, opts ...Option) *NodeAdapter {
	a, err := NewNodeAdapter(endpoint, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// NewWithDefaultLocalEndpoint creates a node client for DefaultLocalEndpoint.
func NewWithDefaultLocalEndpoint(opts ...Option) *NodeAdapter {
	return MustNewNodeAdapter(DefaultLocalEndpoint, opts...)
}

// NewNodeAdapterFromProvider wraps an already constructed transport; its URL becomes the endpoint.
func NewNodeAdapterFromProvider(provider client.Transport, opts ...Option) (*NodeAdapter, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: provider", domain.ErrNilDependency)
	}
	return newNodeAdapter(provider, collectOptions(opts)), nil
}

func collectOptions(opts []Option) adapterOptions {
	var o adapterOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.NewSlogAdapter(nil)
	}
	return o
}

func newNodeAdapter(provider client.Transport, o adapterOptions) *NodeAdapter {
	return &NodeAdapter{
		transport: provider,
		logger:    o.logger.With("component", "node_client", "endpoint", provider.URL()),
		observer:  o.observer,
	}
}

// URL returns the node endpoint.
func (a *NodeAdapter) URL() string {
	return a.transport.URL()
}

// Provider returns the underlying transport.
func (a *NodeAdapter) Provider() client.Transport {
	return a.transport
}

// MineBlock forces the node to mine one block (evm_mine).
func (a *NodeAdapter) MineBlock(ctx context.Context) error {
	return a.exchange(ctx, "evm_mine", nil)
}

// BlockNumber fetches the number of the most recent block.
func (a *NodeAdapter) BlockNumber(ctx context.Context) (uint64, error) {
	var n hexutil.Uint64
	if err := a.call(ctx, &n, "eth_blockNumber"); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// BlockByNumber fetches a block by its number.
func (a *NodeAdapter) BlockByNumber(ctx context.Context, number uint64, fullTransactions bool) (*domain.Block, error) {
	return a.getBlock(ctx, "eth_getBlockByNumber", hexutil.EncodeUint64(number), fullTransactions)
}

// BlockByHash fetches a block by its hash. Transaction bodies are never inlined.
func (a *NodeAdapter) BlockByHash(ctx context.Context, hash common.Hash) (*domain.Block, error) {
	return a.getBlock(ctx, "eth_getBlockByHash", hash, false)
}

// BlockByTransaction fetches the block containing txHash in two steps: the receipt is resolved
// first to learn the block number, then that block is fetched. A failure in the second step
// is reported with the resolved block number.
func (a *NodeAdapter) BlockByTransaction(ctx context.Context, txHash common.Hash, fullTransactions bool) (*domain.Block, error) {
	receipt, err := a.TransactionReceipt(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if receipt.IsPending() {
		return nil, fmt.Errorf("transaction %s: %w", txHash.Hex(), domain.ErrPendingTransaction)
	}

	block, err := a.BlockByNumber(ctx, *receipt.BlockNumber, fullTransactions)
	if err != nil {
		return nil, fmt.Errorf("receipt of %s points at block %d: %w", txHash.Hex(), *receipt.BlockNumber, err)
	}
	return block, nil
}

// IncreaseTime shifts the node clock (evm_increaseTime) and mines a block so the new
// timestamp becomes observable. If mining fails after the shift succeeded, the returned
// error matches both domain.ErrTimeAdvancedNotMined and the mining error: time has moved.
func (a *NodeAdapter) IncreaseTime(ctx context.Context, seconds uint64) error {
	if err := a.exchange(ctx, "evm_increaseTime", nil, seconds); err != nil {
		return err
	}
	if err := a.MineBlock(ctx); err != nil {
		a.logger.Warn("Chain time advanced but mining failed", "seconds", seconds, "error", err)
		return fmt.Errorf("%w (by %d seconds): %w", domain.ErrTimeAdvancedNotMined, seconds, err)
	}
	return nil
}

// ChainID fetches the chain id (eth_chainId).
func (a *NodeAdapter) ChainID(ctx context.Context) (*big.Int, error) {
	return a.getBig(ctx, "eth_chainId")
}

// GasPrice fetches the suggested legacy gas price (eth_gasPrice).
func (a *NodeAdapter) GasPrice(ctx context.Context) (*big.Int, error) {
	return a.getBig(ctx, "eth_gasPrice")
}

// PendingNonceAt fetches the next nonce for account, counting pending transactions.
func (a *NodeAdapter) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	var n hexutil.Uint64
	if err := a.call(ctx, &n, "eth_getTransactionCount", account, "pending"); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// SendRawTransaction submits a signed transaction and returns its hash.
func (a *NodeAdapter) SendRawTransaction(ctx context.Context, rawTx []byte) (common.Hash, error) {
	var h common.Hash
	if err := a.call(ctx, &h, "eth_sendRawTransaction", hexutil.Encode(rawTx)); err != nil {
		return common.Hash{}, err
	}
	return h, nil
}

// TransactionReceipt fetches the receipt of txHash. An unknown transaction is domain.ErrTransactionNotFound.
func (a *NodeAdapter) TransactionReceipt(ctx context.Context, txHash common.Hash) (*domain.Receipt, error) {
	const method = "eth_getTransactionReceipt"
	var rpcReceipt Receipt
	err := a.exchange(ctx, method, func(raw json.RawMessage) error {
		if isJSONNull(raw) {
			return fmt.Errorf("transaction %s: %w", txHash.Hex(), domain.ErrTransactionNotFound)
		}
		if err := jsonUnmarshal(raw, &rpcReceipt); err != nil {
			return fmt.Errorf("%s: %w: %w", method, domain.ErrDecode, err)
		}
		return nil
	}, txHash)
	if err != nil {
		return nil, err
	}
	return mapRPCReceiptToDomain(&rpcReceipt), nil
}

// Snapshot records the current chain state (evm_snapshot) and returns the snapshot id.
func (a *NodeAdapter) Snapshot(ctx context.Context) (string, error) {
	var id string
	if err := a.call(ctx, &id, "evm_snapshot"); err != nil {
		return "", err
	}
	return id, nil
}

// Revert restores the chain state recorded by Snapshot (evm_revert).
func (a *NodeAdapter) Revert(ctx context.Context, snapshotID string) (bool, error) {
	var ok bool
	if err := a.call(ctx, &ok, "evm_revert", snapshotID); err != nil {
		return false, err
	}
	return ok, nil
}

func (a *NodeAdapter) getBlock(ctx context.Context, method string, selector any, fullTransactions bool) (*domain.Block, error) {
	var block *domain.Block
	err := a.exchange(ctx, method, func(raw json.RawMessage) error {
		if isJSONNull(raw) {
			return fmt.Errorf("%s(%v): %w", method, selector, domain.ErrBlockNotFound)
		}

		var rpcBlock Block
		if err := jsonUnmarshal(raw, &rpcBlock); err != nil {
			return fmt.Errorf("%s: %w: %w", method, domain.ErrDecode, err)
		}
		mapped, err := mapRPCBlockToDomain(&rpcBlock, fullTransactions)
		if err != nil {
			return fmt.Errorf("%s: %w: %w", method, domain.ErrDecode, err)
		}
		block = mapped
		return nil
	}, selector, fullTransactions)
	if err != nil {
		return nil, err
	}
	return block, nil
}

func (a *NodeAdapter) getBig(ctx context.Context, method string) (*big.Int, error) {
	var v hexutil.Big
	if err := a.call(ctx, &v, method); err != nil {
		return nil, err
	}
	return v.ToInt(), nil
}

// errNullValue guards decoders against a null result where a value is required.
var errNullValue = errors.New("result is null")

func jsonUnmarshal(raw []byte, out any) error {
	if isJSONNull(raw) {
		return errNullValue
	}
	return json.Unmarshal(raw, out)
}
