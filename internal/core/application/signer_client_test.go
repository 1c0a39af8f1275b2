package application_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"subgraph_setup_utils/internal/adapters/rpc"
	"subgraph_setup_utils/internal/core/application"
	"subgraph_setup_utils/internal/core/domain"
	"subgraph_setup_utils/internal/testutil/fakenode"
)

func newMockedSigner(t *testing.T, chainID int64) *application.SignerClient {
	t.Helper()
	h, node := setupHandler(t)
	node.On("ChainID", mock.Anything).Return(big.NewInt(chainID), nil)

	c, err := h.GetClient(context.Background(), domain.SelectIndex(1))
	require.NoError(t, err)
	return c
}

func TestSignerClient_SignTx(t *testing.T) {
	c := newMockedSigner(t, 31337)
	to := common.HexToAddress(goldenAddresses[2])

	signed, err := c.SignTx(types.NewTx(&types.LegacyTx{To: &to, Gas: 21_000, GasPrice: big.NewInt(1)}))
	require.NoError(t, err)

	assert.Equal(t, int64(31337), signed.ChainId().Int64())
	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(31337)), signed)
	require.NoError(t, err)
	assert.Equal(t, c.Address(), sender)

	_, err = types.Sender(types.LatestSignerForChainID(big.NewInt(1)), signed)
	assert.Error(t, err, "signature must not verify on another chain")
}

func TestSignerClient_ChainIDIsCopied(t *testing.T) {
	c := newMockedSigner(t, 31337)

	c.ChainID().SetInt64(1)
	assert.Equal(t, int64(31337), c.ChainID().Int64())
}

func TestSignerClient_SignerFn(t *testing.T) {
	c := newMockedSigner(t, 31337)
	fn := c.SignerFn()
	tx := types.NewTx(&types.LegacyTx{Gas: 21_000, GasPrice: big.NewInt(1)})

	_, err := fn(c.Address(), tx)
	assert.NoError(t, err)

	_, err = fn(common.HexToAddress(goldenAddresses[0]), tx)
	assert.ErrorIs(t, err, application.ErrNotAuthorized)
}

func TestSignerClient_TransactOpts(t *testing.T) {
	c := newMockedSigner(t, 31337)
	ctx := context.WithValue(context.Background(), struct{}{}, "marker")

	opts, err := c.TransactOpts(ctx)
	require.NoError(t, err)
	assert.Equal(t, c.Address(), opts.From)
	assert.Equal(t, ctx, opts.Context)
}

func TestSignerClient_TransferAgainstNode(t *testing.T) {
	node := fakenode.New(t)
	client, err := rpc.NewNodeAdapter(node.URL(), rpc.WithLogger(discardLogger()))
	require.NoError(t, err)
	h, err := application.WithDefaultTestMnemonic(client, application.WithWalletLogger(discardLogger()))
	require.NoError(t, err)

	ctx := context.Background()
	signer, err := h.GetClient(ctx, domain.SelectIndex(0))
	require.NoError(t, err)
	assert.Equal(t, node.URL(), signer.Endpoint())
	assert.Equal(t, node.ChainID(), signer.ChainID())

	to := common.HexToAddress(goldenAddresses[1])
	for i := 0; i < 2; i++ {
		hash, err := signer.Transfer(ctx, to, big.NewInt(1_000))
		require.NoError(t, err)

		block, err := signer.Node().BlockByTransaction(ctx, hash, true)
		require.NoError(t, err)
		require.Len(t, block.Transactions, 1)
		assert.Equal(t, signer.Address(), block.Transactions[0].From)
		assert.Equal(t, uint64(i), block.Transactions[0].Nonce)
	}

	nonce, err := client.PendingNonceAt(ctx, signer.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), nonce)
}

func TestSignerClient_WrongChainRejectedByNode(t *testing.T) {
	node := fakenode.New(t)
	client, err := rpc.NewNodeAdapter(node.URL(), rpc.WithLogger(discardLogger()))
	require.NoError(t, err)

	foreign := newMockedSigner(t, 1)
	tx, err := foreign.SignTx(types.NewTx(&types.LegacyTx{Gas: 21_000, GasPrice: big.NewInt(1)}))
	require.NoError(t, err)
	raw, err := tx.MarshalBinary()
	require.NoError(t, err)

	_, err = client.SendRawTransaction(context.Background(), raw)
	assert.ErrorIs(t, err, domain.ErrNode)
}

func TestSignerClient_ContractBackend(t *testing.T) {
	node := fakenode.New(t, fakenode.WithChainID(1337))
	client, err := rpc.NewNodeAdapter(node.URL(), rpc.WithLogger(discardLogger()))
	require.NoError(t, err)
	h, err := application.WithDefaultTestMnemonic(client, application.WithWalletLogger(discardLogger()))
	require.NoError(t, err)

	ctx := context.Background()
	signer, err := h.GetClient(ctx, domain.DefaultSelector())
	require.NoError(t, err)

	backend, err := signer.ContractBackend(ctx)
	require.NoError(t, err)
	defer backend.Close()

	id, err := backend.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1337), id.Int64())
}
