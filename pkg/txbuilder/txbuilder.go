// Package txbuilder assembles, signs and submits launchpad transactions.
//
// A Builder fetches a fresh blockhash, prepends compute budget instructions,
// optionally appends a Jito tip and sends through either the RPC node or the
// Jito block engine.
package txbuilder

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"github.com/ninja0404/launchpad-go-sdk/pkg/constants"
	"github.com/ninja0404/launchpad-go-sdk/pkg/jito"
	wraprpc "github.com/ninja0404/launchpad-go-sdk/pkg/rpc"
	"github.com/ninja0404/launchpad-go-sdk/pkg/wallet"
)

// ConfirmationLevel represents transaction confirmation depth.
type ConfirmationLevel string

const (
	ConfirmationProcessed ConfirmationLevel = "processed"
	ConfirmationConfirmed ConfirmationLevel = "confirmed"
	ConfirmationFinalized ConfirmationLevel = "finalized"
)

// ParseConfirmationLevel maps a commitment string to a level, defaulting to confirmed.
func ParseConfirmationLevel(s string) ConfirmationLevel {
	switch ConfirmationLevel(s) {
	case ConfirmationProcessed, ConfirmationFinalized:
		return ConfirmationLevel(s)
	default:
		return ConfirmationConfirmed
	}
}

// ComputeBudget holds the compute unit limit and price prepended to each
// transaction. Zero values are omitted.
type ComputeBudget struct {
	UnitLimit uint32
	UnitPrice uint64 // micro-lamports per compute unit
}

// Instructions returns the compute budget instructions, limit first.
func (cb ComputeBudget) Instructions() []solana.Instruction {
	var out []solana.Instruction
	if cb.UnitLimit > 0 {
		out = append(out, computebudget.NewSetComputeUnitLimitInstruction(cb.UnitLimit).Build())
	}
	if cb.UnitPrice > 0 {
		out = append(out, computebudget.NewSetComputeUnitPriceInstruction(cb.UnitPrice).Build())
	}
	return out
}

// Builder ties together RPC, compute budget, Jito and signing.
type Builder struct {
	client        *wraprpc.Client
	commitment    solanarpc.CommitmentType
	skipPreflight bool
	budget        ComputeBudget
	jitoClient    *jito.Client
	tipLamports   uint64
	pollInterval  time.Duration
	log           zerolog.Logger
}

// NewBuilder constructs a builder with the provided client and commitment.
func NewBuilder(client *wraprpc.Client, commitment solanarpc.CommitmentType) *Builder {
	if commitment == "" {
		commitment = solanarpc.CommitmentConfirmed
	}
	return &Builder{
		client:       client,
		commitment:   commitment,
		pollInterval: 400 * time.Millisecond,
		log:          zerolog.Nop(),
	}
}

// WithSkipPreflight configures whether to skip preflight.
func (b *Builder) WithSkipPreflight(skip bool) *Builder {
	b.skipPreflight = skip
	return b
}

// WithComputeBudget sets the compute budget prepended by BuildTransaction.
func (b *Builder) WithComputeBudget(cb ComputeBudget) *Builder {
	b.budget = cb
	return b
}

// WithJito routes sends through the block engine and appends a tip of
// tipLamports to every built transaction. Pass nil to use plain RPC.
func (b *Builder) WithJito(jitoClient *jito.Client, tipLamports uint64) *Builder {
	b.jitoClient = jitoClient
	b.tipLamports = tipLamports
	return b
}

// WithLogger sets the logger for send and confirmation events.
func (b *Builder) WithLogger(log zerolog.Logger) *Builder {
	b.log = log
	return b
}

// WithPollInterval sets how often WaitForConfirmation polls.
func (b *Builder) WithPollInterval(d time.Duration) *Builder {
	if d > 0 {
		b.pollInterval = d
	}
	return b
}

// HasJito returns true if Jito client is configured.
func (b *Builder) HasJito() bool {
	return b.jitoClient != nil
}

// Client returns the wrapped RPC client.
func (b *Builder) Client() *wraprpc.Client {
	return b.client
}

// Instructions wraps ixs with the configured compute budget and, when Jito is
// enabled, a trailing tip paid by feePayer. The budget is skipped when ixs
// already carry their own compute budget instructions.
func (b *Builder) Instructions(feePayer solana.PublicKey, ixs ...solana.Instruction) []solana.Instruction {
	var out []solana.Instruction
	if !hasComputeBudget(ixs) {
		out = b.budget.Instructions()
	}
	out = append(out, ixs...)
	if b.jitoClient != nil && b.tipLamports > 0 {
		out = append(out, jito.TipInstruction(feePayer, b.tipLamports, solana.PublicKey{}))
	}
	return out
}

func hasComputeBudget(ixs []solana.Instruction) bool {
	for _, ix := range ixs {
		if ix != nil && ix.ProgramID().Equals(constants.ComputeBudgetProgramID) {
			return true
		}
	}
	return false
}

// BuildTransaction builds a transaction with a fresh blockhash.
func (b *Builder) BuildTransaction(ctx context.Context, feePayer solana.PublicKey, instructions ...solana.Instruction) (*solana.Transaction, error) {
	if b.client == nil {
		return nil, fmt.Errorf("rpc client is nil")
	}
	if len(instructions) == 0 {
		return nil, fmt.Errorf("requires at least one instruction")
	}

	latest, err := b.client.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("get latest blockhash: %w", err)
	}
	return Assemble(latest.Value.Blockhash, feePayer, b.Instructions(feePayer, instructions...)...)
}

// Assemble builds a transaction from a known blockhash without touching the network.
func Assemble(blockhash solana.Hash, feePayer solana.PublicKey, instructions ...solana.Instruction) (*solana.Transaction, error) {
	builder := solana.NewTransactionBuilder().
		SetRecentBlockHash(blockhash).
		SetFeePayer(feePayer)
	for _, ix := range instructions {
		builder.AddInstruction(ix)
	}
	tx, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build transaction: %w", err)
	}
	return tx, nil
}

// SignTransaction signs using the provided signers in account-key order.
func SignTransaction(ctx context.Context, tx *solana.Transaction, signers ...wallet.Signer) error {
	if tx == nil {
		return fmt.Errorf("transaction is nil")
	}
	required := int(tx.Message.Header.NumRequiredSignatures)
	if required == 0 {
		return nil
	}
	if len(tx.Message.AccountKeys) < required {
		return fmt.Errorf("not enough account keys for required signatures")
	}

	signerMap := make(map[solana.PublicKey]wallet.Signer, len(signers))
	for _, s := range signers {
		if s != nil {
			signerMap[s.PublicKey()] = s
		}
	}

	messageBytes, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	tx.Signatures = make([]solana.Signature, required)
	for i := 0; i < required; i++ {
		pk := tx.Message.AccountKeys[i]
		signer, ok := signerMap[pk]
		if !ok {
			return fmt.Errorf("missing signer for %s", pk)
		}
		sig, err := signer.SignMessage(ctx, messageBytes)
		if err != nil {
			return fmt.Errorf("sign message for %s: %w", pk, err)
		}
		tx.Signatures[i] = sig
	}
	return nil
}

// Send sends a signed transaction through Jito when configured, RPC otherwise.
func (b *Builder) Send(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if b.jitoClient != nil {
		sig, err := b.jitoClient.SendTransaction(ctx, tx)
		if err != nil {
			return solana.Signature{}, fmt.Errorf("jito send transaction: %w", err)
		}
		b.log.Info().Str("signature", sig.String()).Msg("sent via jito")
		return sig, nil
	}

	if b.client == nil {
		return solana.Signature{}, fmt.Errorf("rpc client is nil")
	}
	sig, err := b.client.SendTransaction(ctx, tx, solanarpc.TransactionOpts{
		SkipPreflight:       b.skipPreflight,
		PreflightCommitment: b.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}
	b.log.Info().Str("signature", sig.String()).Msg("sent via rpc")
	return sig, nil
}

// SendAndConfirm sends a signed transaction and waits for confirmation.
// Confirmation always goes through RPC signature statuses.
func (b *Builder) SendAndConfirm(ctx context.Context, tx *solana.Transaction, level ConfirmationLevel) (solana.Signature, error) {
	sig, err := b.Send(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	if err = b.WaitForConfirmation(ctx, sig, level); err != nil {
		return sig, fmt.Errorf("confirmation failed: %w, sig: %v", err, sig)
	}
	return sig, nil
}

// BuildSignSendAndConfirm builds, signs, sends and waits for confirmation.
// Extra signers (such as a new mint keypair) follow the fee payer.
func (b *Builder) BuildSignSendAndConfirm(ctx context.Context, feePayer wallet.Signer, signers []wallet.Signer, level ConfirmationLevel, instructions ...solana.Instruction) (solana.Signature, error) {
	if feePayer == nil {
		return solana.Signature{}, fmt.Errorf("fee payer is required")
	}
	tx, err := b.BuildTransaction(ctx, feePayer.PublicKey(), instructions...)
	if err != nil {
		return solana.Signature{}, err
	}
	allSigners := append([]wallet.Signer{feePayer}, signers...)
	if err = SignTransaction(ctx, tx, allSigners...); err != nil {
		return solana.Signature{}, err
	}
	return b.SendAndConfirm(ctx, tx, level)
}

// Simulate builds and signs a transaction, then simulates it without sending.
func (b *Builder) Simulate(ctx context.Context, feePayer wallet.Signer, signers []wallet.Signer, instructions ...solana.Instruction) (*solanarpc.SimulateTransactionResponse, error) {
	if feePayer == nil {
		return nil, fmt.Errorf("fee payer is required")
	}
	tx, err := b.BuildTransaction(ctx, feePayer.PublicKey(), instructions...)
	if err != nil {
		return nil, err
	}
	if err = SignTransaction(ctx, tx, append([]wallet.Signer{feePayer}, signers...)...); err != nil {
		return nil, err
	}
	return b.client.SimulateTransaction(ctx, tx, &solanarpc.SimulateTransactionOpts{
		Commitment: b.commitment,
	})
}

// WaitForConfirmation polls transaction status until the level is reached or ctx ends.
func (b *Builder) WaitForConfirmation(ctx context.Context, sig solana.Signature, level ConfirmationLevel) error {
	if b.client == nil {
		return fmt.Errorf("rpc client is nil")
	}

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			status, err := b.client.GetSignatureStatus(ctx, sig)
			if err != nil || status == nil {
				continue
			}
			if status.Err != nil {
				return fmt.Errorf("transaction failed: %v", status.Err)
			}
			if reached(status.ConfirmationStatus, level) {
				return nil
			}
		}
	}
}

func reached(got solanarpc.ConfirmationStatusType, level ConfirmationLevel) bool {
	switch level {
	case ConfirmationProcessed:
		return true
	case ConfirmationFinalized:
		return got == solanarpc.ConfirmationStatusFinalized
	default:
		return got == solanarpc.ConfirmationStatusConfirmed ||
			got == solanarpc.ConfirmationStatusFinalized
	}
}
