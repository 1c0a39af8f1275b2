package main

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subgraph_setup_utils/internal/testutil/fakenode"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logger:\n  level: error\nmetrics:\n  enabled: true\n"), 0o600))

	root := newRootCmdWithRegisterer(prometheus.NewRegistry())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestCLI(t *testing.T) {
	node := fakenode.New(t)
	url := node.URL()

	out, err := run(t, "--url", url, "block-number")
	require.NoError(t, err)
	assert.Equal(t, "0", out)

	out, err = run(t, "--url", url, "mine")
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	out, err = run(t, "--url", url, "warp", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "block 2 timestamp")

	out, err = run(t, "--url", url, "block", "2")
	require.NoError(t, err)
	assert.Regexp(t, `number\s*\|\s*2\s`, out)

	out, err = run(t, "--url", url, "chain-id")
	require.NoError(t, err)
	assert.Equal(t, "31337", out)

	out, err = run(t, "--url", url, "address", "1")
	require.NoError(t, err)
	assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", out)

	id, err := run(t, "--url", url, "snapshot")
	require.NoError(t, err)
	_, err = run(t, "--url", url, "mine")
	require.NoError(t, err)
	out, err = run(t, "--url", url, "revert", id)
	require.NoError(t, err)
	assert.Equal(t, "reverted", out)
}

func TestCLI_AddressDefaultIndex(t *testing.T) {
	node := fakenode.New(t)

	out, err := run(t, "--url", node.URL(), "address")
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", out)

	t.Setenv("DEVNODE_DEFAULT_INDEX", "19")
	out, err = run(t, "--url", node.URL(), "address")
	require.NoError(t, err)
	assert.Equal(t, "0x8626f6940E2eb28930eFb4CeF49B2d1F2C9C1199", out)

	out, err = run(t, "--url", node.URL(), "address", "1")
	require.NoError(t, err)
	assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", out)

	_, err = run(t, "--url", node.URL(), "address", "1", "2")
	assert.Error(t, err)
}

func TestFmtEther(t *testing.T) {
	assert.Equal(t, "0", fmtEther(nil))
	assert.Equal(t, "1.5", fmtEther(big.NewInt(1_500_000_000_000_000_000)))
	assert.Equal(t, "0.000000000000001", fmtEther(big.NewInt(1_000)))
}

func TestCLI_Errors(t *testing.T) {
	node := fakenode.New(t)

	_, err := run(t, "--url", node.URL(), "block", "99")
	assert.Error(t, err)

	_, err = run(t, "--url", node.URL(), "warp", "soon")
	assert.Error(t, err)

	_, err = run(t, "--url", "localhost", "block-number")
	assert.Error(t, err)
}
