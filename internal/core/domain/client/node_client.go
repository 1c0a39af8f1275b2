// Package client defines interfaces for external service clients, such as the development node client.
//
//go:generate mockery --name=NodeClient --output=../../application/mocks/mock_client --outpkg=mock_client
package client

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"subgraph_setup_utils/internal/core/domain"
)

// NodeClient defines the interface for interacting with an Ethereum-compatible development node.
type NodeClient interface {
	// URL returns the endpoint the client sends requests to.
	URL() string

	// MineBlock forces the node to mine one block.
	MineBlock(ctx context.Context) error

	// BlockNumber fetches the current block height.
	BlockNumber(ctx context.Context) (uint64, error)

	// BlockByNumber fetches a block, optionally inlining full transaction bodies.
	BlockByNumber(ctx context.Context, number uint64, fullTransactions bool) (*domain.Block, error)

	// BlockByHash fetches a block by hash without transaction bodies.
	BlockByHash(ctx context.Context, hash common.Hash) (*domain.Block, error)

	// BlockByTransaction resolves the receipt of txHash and fetches the block that contains it.
	BlockByTransaction(ctx context.Context, txHash common.Hash, fullTransactions bool) (*domain.Block, error)

	// IncreaseTime shifts the node clock by seconds and mines a block so the new time is observable.
	IncreaseTime(ctx context.Context, seconds uint64) error

	// ChainID fetches the network chain id.
	ChainID(ctx context.Context) (*big.Int, error)

	// GasPrice fetches the node's suggested legacy gas price.
	GasPrice(ctx context.Context) (*big.Int, error)

	// PendingNonceAt fetches the next nonce for account, including pending transactions.
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)

	// SendRawTransaction submits a signed, binary-encoded transaction.
	SendRawTransaction(ctx context.Context, rawTx []byte) (common.Hash, error)

	// TransactionReceipt fetches the receipt of a transaction.
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*domain.Receipt, error)

	// Snapshot records the current chain state and returns its id.
	Snapshot(ctx context.Context) (string, error)

	// Revert restores a snapshot taken with Snapshot.
	Revert(ctx context.Context, snapshotID string) (bool, error)
}
