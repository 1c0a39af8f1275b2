package application_test

import (
	"context"
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"subgraph_setup_utils/internal/core/application"
	"subgraph_setup_utils/internal/core/application/mocks/mock_client"
	"subgraph_setup_utils/internal/core/domain"
	applogger "subgraph_setup_utils/internal/logger"
)

var goldenAddresses = map[uint32]string{
	0:  "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
	1:  "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
	9:  "0xa0Ee7A142d267C1f36714E4a8F75612F20a79720",
	18: "0xdD2FD4581271e230360230F9337D5c0430Bf44C0",
	19: "0x8626f6940E2eb28930eFb4CeF49B2d1F2C9C1199",
}

func discardLogger() applogger.AppLogger {
	return applogger.Discard()
}

func setupHandler(t *testing.T) (*application.WalletHandler, *mock_client.NodeClient) {
	t.Helper()
	node := mock_client.NewNodeClient(t)
	h, err := application.WithDefaultTestMnemonic(node, application.WithWalletLogger(discardLogger()))
	require.NoError(t, err)
	return h, node
}

func TestGetWallet_GoldenAddresses(t *testing.T) {
	h, _ := setupHandler(t)

	for index, want := range goldenAddresses {
		kp, err := h.GetWallet(index)
		require.NoError(t, err, "index %d", index)
		assert.Equal(t, common.HexToAddress(want), kp.Address(), "index %d", index)
	}
}

func TestGetWallet_Deterministic(t *testing.T) {
	h, _ := setupHandler(t)

	a, err := h.GetWallet(7)
	require.NoError(t, err)
	b, err := h.GetWallet(7)
	require.NoError(t, err)
	assert.True(t, a.Equals(b))

	c, err := h.GetWallet(8)
	require.NoError(t, err)
	assert.NotEqual(t, a.Address(), c.Address())
}

func TestGetWallet_HardenedIndex(t *testing.T) {
	h, _ := setupHandler(t)

	_, err := h.GetWallet(math.MaxInt32 + 1)
	assert.ErrorIs(t, err, domain.ErrDerivation)

	_, err = h.GetWallet(math.MaxInt32)
	assert.NoError(t, err)
}

func TestDefaultWallet(t *testing.T) {
	h, _ := setupHandler(t)
	assert.Equal(t, uint32(0), h.DefaultIndex())
	kp, err := h.DefaultWallet()
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(goldenAddresses[0]), kp.Address())

	h18, err := application.WithDefaultTestMnemonic(mock_client.NewNodeClient(t),
		application.WithWalletLogger(discardLogger()),
		application.WithDefaultIndex(18),
	)
	require.NoError(t, err)
	kp, err = h18.DefaultWallet()
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(goldenAddresses[18]), kp.Address())

	bad, err := application.WithDefaultTestMnemonic(mock_client.NewNodeClient(t), application.WithDefaultIndex(math.MaxInt32+1))
	require.NoError(t, err)
	_, err = bad.DefaultWallet()
	assert.ErrorIs(t, err, domain.ErrDerivation)
}

func TestNewWalletHandler_InvalidInput(t *testing.T) {
	node := mock_client.NewNodeClient(t)

	_, err := application.NewWalletHandler("not a valid mnemonic phrase", node)
	assert.ErrorIs(t, err, domain.ErrDerivation)

	_, err = application.NewWalletHandler(application.DefaultTestMnemonic, nil)
	assert.ErrorIs(t, err, domain.ErrNilDependency)
}

func TestNewWalletHandler_Passphrase(t *testing.T) {
	node := mock_client.NewNodeClient(t)
	plain, err := application.NewWalletHandler(application.DefaultTestMnemonic, node)
	require.NoError(t, err)
	salted, err := application.NewWalletHandler(application.DefaultTestMnemonic, node, application.WithPassphrase("hunter2"))
	require.NoError(t, err)

	a, err := plain.GetWallet(0)
	require.NoError(t, err)
	b, err := salted.GetWallet(0)
	require.NoError(t, err)
	assert.NotEqual(t, a.Address(), b.Address())
	assert.Equal(t, common.HexToAddress("0x55585EFaaFc6F444A28Dce28322edf57620c88Bf"), b.Address())
	assert.Same(t, node, salted.Node())
}

func TestGetWallet_LeadingZeroIntermediateKey(t *testing.T) {
	// An intermediate key on this path starts with a zero byte.
	const mnemonic = "sound practice disease erupt basket pumpkin truck file gorilla behave find " +
		"exchange napkin boy congress address city net prosper crop chair marine chase seven"

	h, err := application.NewWalletHandler(mnemonic, mock_client.NewNodeClient(t), application.WithWalletLogger(discardLogger()))
	require.NoError(t, err)

	kp, err := h.GetWallet(0)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x98e440675eFF3041D20bECb7fE7e81746A431b6d"), kp.Address())
}

func TestGetClient_SelectorsAgree(t *testing.T) {
	h, node := setupHandler(t)
	ctx := context.Background()
	node.On("ChainID", ctx).Return(big.NewInt(31337), nil)

	kp3, err := h.GetWallet(3)
	require.NoError(t, err)

	byIndex, err := h.GetClient(ctx, domain.SelectIndex(3))
	require.NoError(t, err)
	byKeypair, err := h.GetClient(ctx, domain.SelectKeypair(kp3))
	require.NoError(t, err)
	assert.Equal(t, byIndex.Address(), byKeypair.Address())

	var nilIndex *uint32
	var nilKeypair *domain.Keypair
	for name, sel := range map[string]domain.WalletSelector{
		"default":     domain.DefaultSelector(),
		"zero value":  {},
		"nil index":   domain.SelectIndexPtr(nilIndex),
		"nil keypair": domain.SelectKeypairPtr(nilKeypair),
		"index 0":     domain.SelectIndex(0),
	} {
		c, err := h.GetClient(ctx, sel)
		require.NoError(t, err, name)
		assert.Equal(t, common.HexToAddress(goldenAddresses[0]), c.Address(), name)
		assert.Equal(t, int64(31337), c.ChainID().Int64(), name)
	}
}

func TestGetClient_ChainIDFailure(t *testing.T) {
	h, node := setupHandler(t)
	nodeErr := &domain.NodeError{Code: -32601, Message: "the method eth_chainId does not exist/is not available"}
	node.On("ChainID", mock.Anything).Return(nil, nodeErr)

	c, err := h.GetClient(context.Background(), domain.DefaultSelector())
	assert.Nil(t, c)
	assert.ErrorIs(t, err, domain.ErrNode)

	var got *domain.NodeError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, nodeErr.Message, got.Message)
}

func TestGetClient_ResolveFailureSkipsNode(t *testing.T) {
	h, node := setupHandler(t)

	_, err := h.GetClient(context.Background(), domain.SelectIndex(math.MaxUint32))
	assert.ErrorIs(t, err, domain.ErrDerivation)

	_, err = h.GetClient(context.Background(), domain.SelectKeypair(domain.Keypair{}))
	assert.ErrorIs(t, err, domain.ErrInvalidPrivateKey)

	node.AssertNotCalled(t, "ChainID", mock.Anything)
}
