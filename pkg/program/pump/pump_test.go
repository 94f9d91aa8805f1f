package pump

import (
	"bytes"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeAccount(t *testing.T, disc []byte, v interface{}, trailing int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	buf.Write(disc)
	require.NoError(t, bin.NewBorshEncoder(buf).Encode(v))
	buf.Write(make([]byte, trailing))
	return buf.Bytes()
}

func TestGlobalUnmarshalIgnoresTrailingFields(t *testing.T) {
	want := Global{
		Initialized:                 true,
		FeeRecipient:                solana.NewWallet().PublicKey(),
		InitialVirtualTokenReserves: 1_073_000_000_000_000,
		InitialVirtualSolReserves:   30_000_000_000,
		InitialRealTokenReserves:    793_100_000_000_000,
		TokenTotalSupply:            1_000_000_000_000_000,
		FeeBasisPoints:              95,
	}
	want.FeeRecipients[2] = solana.NewWallet().PublicKey()

	var got Global
	require.NoError(t, got.Unmarshal(encodeAccount(t, GlobalDiscriminator, want, 64)))
	assert.Equal(t, want, got)
	assert.Equal(t, []solana.PublicKey{want.FeeRecipient, want.FeeRecipients[2]}, got.AllFeeRecipients())
}

func TestBondingCurveUnmarshal(t *testing.T) {
	want := BondingCurve{
		VirtualTokenReserves: 1_073_000_000_000_000,
		VirtualSolReserves:   30_000_000_000,
		RealTokenReserves:    793_100_000_000_000,
		TokenTotalSupply:     1_000_000_000_000_000,
		Creator:              solana.NewWallet().PublicKey(),
	}
	var got BondingCurve
	require.NoError(t, got.Unmarshal(encodeAccount(t, BondingCurveDiscriminator, want, 2)))
	assert.Equal(t, want, got)

	assert.Error(t, got.Unmarshal(encodeAccount(t, GlobalDiscriminator, want, 0)))
}

func TestKnownAddresses(t *testing.T) {
	global, _, err := DeriveGlobalPDA()
	require.NoError(t, err)
	assert.Equal(t, "4wTV1YmiEkRvAtNtsSGPtUrqRYQMe5SKy2uB4Jjaxnjf", global.String())

	eventAuthority, _, err := DeriveEventAuthorityPDA()
	require.NoError(t, err)
	assert.Equal(t, "Ce6TQqeHC9p8KetsN6JsjHK7UTZk7nasjjnr7XxXp9F1", eventAuthority.String())

	mintAuthority, _, err := DeriveMintAuthorityPDA()
	require.NoError(t, err)
	assert.Equal(t, "TSLvdd1pWpHVjahSpsvCXUbgwsL3JAcvokwaKt1eokM", mintAuthority.String())

	volume, _, err := DeriveGlobalVolumeAccumulatorPDA()
	require.NoError(t, err)
	assert.Equal(t, "Hq2wp8uJ9jCPsYgNHex8RtqdvMPfVGoYwjvF1ATiwn2Y", volume.String())

	feeConfig, _, err := DeriveFeeConfigPDA()
	require.NoError(t, err)
	assert.Equal(t, "8Wf5TiAheLUqBrKXeYg2JtAFFMWtKdG2BSFgqUcPVwTt", feeConfig.String())
}

func TestMintScopedPDAsDiffer(t *testing.T) {
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()
	bcA, _, err := DeriveBondingCurvePDA(a)
	require.NoError(t, err)
	bcB, _, err := DeriveBondingCurvePDA(b)
	require.NoError(t, err)
	assert.NotEqual(t, bcA, bcB)

	ata, _, err := DeriveAssociatedBondingCurve(bcA, a)
	require.NoError(t, err)
	expected, _, err := solana.FindAssociatedTokenAddress(bcA, a)
	require.NoError(t, err)
	assert.Equal(t, expected, ata)
}
