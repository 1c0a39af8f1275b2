package application

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"subgraph_setup_utils/internal/core/domain"
	"subgraph_setup_utils/internal/core/domain/client"
)

// TransferGasLimit is the intrinsic gas of a plain value transfer.
const TransferGasLimit = 21_000

// ErrNotAuthorized is returned when asked to sign for an address other than the client's own.
var ErrNotAuthorized = errors.New("not authorized to sign for this account")

// SignerClient is a keypair bound to a chain id and a node endpoint.
// It is immutable and safe for concurrent use.
type SignerClient struct {
	keypair domain.Keypair
	chainID *big.Int
	signer  types.Signer
	node    client.NodeClient
}

func newSignerClient(keypair domain.Keypair, chainID *big.Int, node client.NodeClient) *SignerClient {
	id := new(big.Int).Set(chainID)
	return &SignerClient{
		keypair: keypair,
		chainID: id,
		signer:  types.LatestSignerForChainID(id),
		node:    node,
	}
}

// Address returns the signing account.
func (c *SignerClient) Address() common.Address {
	return c.keypair.Address()
}

// Keypair returns the signing keypair.
func (c *SignerClient) Keypair() domain.Keypair {
	return c.keypair
}

// ChainID returns a copy of the chain id signatures are bound to.
func (c *SignerClient) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Endpoint returns the URL of the node the client talks to.
func (c *SignerClient) Endpoint() string {
	return c.node.URL()
}

// Node returns the node client.
func (c *SignerClient) Node() client.NodeClient {
	return c.node
}

// SignTx signs tx with replay protection for the client's chain id.
func (c *SignerClient) SignTx(tx *types.Transaction) (*types.Transaction, error) {
	signed, err := types.SignTx(tx, c.signer, c.privateKey())
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return signed, nil
}

// SignerFn returns a bind.SignerFn that only signs for the client's address.
func (c *SignerClient) SignerFn() bind.SignerFn {
	return func(address common.Address, tx *types.Transaction) (*types.Transaction, error) {
		if address != c.Address() {
			return nil, fmt.Errorf("%w: %s", ErrNotAuthorized, address.Hex())
		}
		return c.SignTx(tx)
	}
}

// TransactOpts returns transaction options for abigen bindings, signing with the client's key.
func (c *SignerClient) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(c.privateKey(), c.ChainID())
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// SendTransaction signs tx and submits it to the node.
func (c *SignerClient) SendTransaction(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	signed, err := c.SignTx(tx)
	if err != nil {
		return common.Hash{}, err
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode transaction: %w", err)
	}
	return c.node.SendRawTransaction(ctx, raw)
}

// Transfer sends value wei to the given address using the pending nonce and the node's gas price.
func (c *SignerClient) Transfer(ctx context.Context, to common.Address, value *big.Int) (common.Hash, error) {
	nonce, err := c.node.PendingNonceAt(ctx, c.Address())
	if err != nil {
		return common.Hash{}, fmt.Errorf("could not fetch nonce: %w", err)
	}
	gasPrice, err := c.node.GasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("could not fetch gas price: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      TransferGasLimit,
		GasPrice: gasPrice,
	})
	return c.SendTransaction(ctx, tx)
}

// ContractBackend dials the client's endpoint with ethclient for use with abigen bindings.
// The caller owns the returned client and must Close it.
func (c *SignerClient) ContractBackend(ctx context.Context) (*ethclient.Client, error) {
	backend, err := ethclient.DialContext(ctx, c.Endpoint())
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", c.Endpoint(), err)
	}
	return backend, nil
}

func (c *SignerClient) privateKey() *ecdsa.PrivateKey {
	return c.keypair.PrivateKey()
}
