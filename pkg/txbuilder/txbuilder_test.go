package txbuilder

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/launchpad-go-sdk/pkg/jito"
	"github.com/ninja0404/launchpad-go-sdk/pkg/wallet"
)

const computeBudgetProgram = "ComputeBudget111111111111111111111111111111"

func TestComputeBudgetInstructions(t *testing.T) {
	assert.Empty(t, ComputeBudget{}.Instructions())

	ixs := ComputeBudget{UnitLimit: 400_000, UnitPrice: 100_000}.Instructions()
	require.Len(t, ixs, 2)
	for _, ix := range ixs {
		assert.Equal(t, computeBudgetProgram, ix.ProgramID().String())
	}

	limitOnly := ComputeBudget{UnitLimit: 1}.Instructions()
	assert.Len(t, limitOnly, 1)
}

func TestInstructionsAppendsTipOnlyWithJito(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	transfer := system.NewTransferInstruction(1, payer, solana.NewWallet().PublicKey()).Build()

	b := NewBuilder(nil, "").WithComputeBudget(ComputeBudget{UnitLimit: 200_000})
	plain := b.Instructions(payer, transfer)
	require.Len(t, plain, 2)
	assert.Equal(t, computeBudgetProgram, plain[0].ProgramID().String())

	b.WithJito(jito.NewClient("", ""), 5_000)
	tipped := b.Instructions(payer, transfer)
	require.Len(t, tipped, 3)
	tip := tipped[2]
	assert.Equal(t, solana.SystemProgramID, tip.ProgramID())
	assert.Contains(t, jito.MainnetTipAccounts, tip.Accounts()[1].PublicKey)
	assert.True(t, b.HasJito())
}

func TestInstructionsKeepsExistingBudget(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	own := ComputeBudget{UnitLimit: 600_000}.Instructions()
	transfer := system.NewTransferInstruction(1, payer, solana.NewWallet().PublicKey()).Build()

	b := NewBuilder(nil, "").WithComputeBudget(ComputeBudget{UnitLimit: 200_000, UnitPrice: 1})
	out := b.Instructions(payer, append(own, transfer)...)
	require.Len(t, out, 2)
	assert.Equal(t, own[0], out[0])
}

func TestAssembleAndSign(t *testing.T) {
	payer := wallet.NewLocalFromPrivateKey(solana.NewWallet().PrivateKey)
	mint := wallet.NewLocalFromPrivateKey(solana.NewWallet().PrivateKey)

	// The mint signs alongside the payer, as it does when a launch is finalized.
	ix := system.NewCreateAccountInstruction(1, 82, solana.TokenProgramID, payer.PublicKey(), mint.PublicKey()).Build()
	tx, err := Assemble(solana.Hash{1}, payer.PublicKey(), ix)
	require.NoError(t, err)
	require.Equal(t, uint8(2), tx.Message.Header.NumRequiredSignatures)

	require.NoError(t, SignTransaction(context.Background(), tx, mint, payer))
	require.NoError(t, tx.VerifySignatures())

	err = SignTransaction(context.Background(), tx, payer)
	assert.ErrorContains(t, err, "missing signer for "+mint.PublicKey().String())
}

func TestBuildTransactionRequiresClient(t *testing.T) {
	_, err := NewBuilder(nil, "").BuildTransaction(context.Background(), solana.PublicKey{}, nil)
	assert.Error(t, err)
}

func TestReached(t *testing.T) {
	assert.True(t, reached(solanarpc.ConfirmationStatusProcessed, ConfirmationProcessed))
	assert.False(t, reached(solanarpc.ConfirmationStatusProcessed, ConfirmationConfirmed))
	assert.True(t, reached(solanarpc.ConfirmationStatusFinalized, ConfirmationConfirmed))
	assert.False(t, reached(solanarpc.ConfirmationStatusConfirmed, ConfirmationFinalized))
}

func TestParseConfirmationLevel(t *testing.T) {
	assert.Equal(t, ConfirmationFinalized, ParseConfirmationLevel("finalized"))
	assert.Equal(t, ConfirmationProcessed, ParseConfirmationLevel("processed"))
	assert.Equal(t, ConfirmationConfirmed, ParseConfirmationLevel("whatever"))
}
