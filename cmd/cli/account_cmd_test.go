package main

import (
	"bytes"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/launchpad-go-sdk/pkg/program/launchpad"
)

func TestDecodeKnownAccount(t *testing.T) {
	want := launchpad.Contribution{
		Launch:      solana.NewWallet().PublicKey(),
		Contributor: solana.NewWallet().PublicKey(),
		Amount:      2_000_000_000,
	}
	var buf bytes.Buffer
	buf.Write(launchpad.ContributionDiscriminator)
	require.NoError(t, bin.NewBorshEncoder(&buf).Encode(want))

	name, decoded, err := decodeKnownAccount(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "launchpad.Contribution", name)
	assert.Equal(t, &want, decoded)

	_, _, err = decodeKnownAccount(make([]byte, 16))
	assert.ErrorContains(t, err, "unknown discriminator")

	_, _, err = decodeKnownAccount([]byte{1, 2})
	assert.Error(t, err)
}
