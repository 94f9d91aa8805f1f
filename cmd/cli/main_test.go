package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/launchpad-go-sdk/pkg/wallet"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEstimateOffline(t *testing.T) {
	out, err := run(t, "estimate", "--escrow", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "min tokens out:  713790000 (713790000000000 raw)")
	assert.Contains(t, out, "clamped:")

	out, err = run(t, "estimate", "--escrow", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "(241162355103725 raw)")
	assert.NotContains(t, out, "clamped:")
}

func TestEstimateInsufficientEscrow(t *testing.T) {
	_, err := run(t, "estimate", "--escrow", "0.01")
	assert.ErrorContains(t, err, "does not cover fixed costs")

	_, err = run(t, "estimate")
	assert.ErrorContains(t, err, "--escrow or --launch")
}

func TestConfigCmd(t *testing.T) {
	out, err := run(t, "config", "--rpc-url", "https://rpc.example", "--commitment", "confirmed")
	require.NoError(t, err)
	assert.Contains(t, out, "rpc=https://rpc.example")
	assert.Contains(t, out, "commitment=confirmed")
	assert.Contains(t, out, "fixed_costs=0.0145 SOL")
}

func TestParseDeadline(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	got, err := parseDeadline("72h", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(72*time.Hour), got)

	got, err = parseDeadline("2030-01-02T03:04:05Z", now)
	require.NoError(t, err)
	assert.Equal(t, int64(1893553445), got.Unix())

	_, err = parseDeadline("tomorrow", now)
	assert.Error(t, err)
}

func TestWriteKeygenFileRoundTrip(t *testing.T) {
	key := wallet.Generate()
	path := filepath.Join(t.TempDir(), "mint.json")
	require.NoError(t, writeKeygenFile(path, key.PrivateKey()))

	loaded, err := wallet.Load(path)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), loaded.PublicKey())
}
