package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignTextRoundTrip(t *testing.T) {
	w := Generate()
	msg := "Sign in to launchpad\nnonce: 4f2a"

	sig, err := SignText(context.Background(), w, msg)
	require.NoError(t, err)
	raw, err := base58.Decode(sig)
	require.NoError(t, err)
	assert.Len(t, raw, solana.SignatureLength)

	require.NoError(t, VerifyText(w.PublicKey(), msg, sig))
	assert.Error(t, VerifyText(w.PublicKey(), msg+"x", sig))
	assert.Error(t, VerifyText(Generate().PublicKey(), msg, sig))
	assert.Error(t, VerifyText(w.PublicKey(), msg, "0OIl"))
}

func TestSignMessageHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate().SignMessage(ctx, []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad(t *testing.T) {
	key := solana.NewWallet().PrivateKey

	fromB58, err := Load(key.String())
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), fromB58.PublicKey())

	path := filepath.Join(t.TempDir(), "id.json")
	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	fromFile, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), fromFile.PublicKey())

	_, err = Load("")
	assert.Error(t, err)
}

func TestRemoteSigner(t *testing.T) {
	local := Generate()
	remote := NewRemoteSigner(local.PublicKey(), func(ctx context.Context, msg []byte) ([]byte, error) {
		sig, err := local.SignMessage(ctx, msg)
		return sig[:], err
	})
	sig, err := SignText(context.Background(), remote, "hello")
	require.NoError(t, err)
	require.NoError(t, VerifyText(local.PublicKey(), "hello", sig))

	short := NewRemoteSigner(local.PublicKey(), func(context.Context, []byte) ([]byte, error) {
		return []byte{1, 2}, nil
	})
	_, err = short.SignMessage(context.Background(), nil)
	assert.ErrorContains(t, err, "invalid signature length")

	failing := NewRemoteSigner(local.PublicKey(), func(context.Context, []byte) ([]byte, error) {
		return nil, errors.New("hsm offline")
	})
	_, err = failing.SignMessage(context.Background(), nil)
	assert.ErrorContains(t, err, "hsm offline")
}
