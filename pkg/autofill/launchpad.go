// Package autofill builds launchpad instructions with every account derived
// or fetched, so callers only supply the decisions: who signs, which launch
// and how much.
package autofill

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/sync/errgroup"

	"github.com/ninja0404/launchpad-go-sdk/pkg/config"
	"github.com/ninja0404/launchpad-go-sdk/pkg/constants"
	"github.com/ninja0404/launchpad-go-sdk/pkg/graduation"
	"github.com/ninja0404/launchpad-go-sdk/pkg/program/launchpad"
	"github.com/ninja0404/launchpad-go-sdk/pkg/program/pump"
	sdkrpc "github.com/ninja0404/launchpad-go-sdk/pkg/rpc"
	"github.com/ninja0404/launchpad-go-sdk/pkg/types"
	"github.com/ninja0404/launchpad-go-sdk/pkg/units"
)

// AccountReader is the part of the RPC client autofill reads through.
// *rpc.Client implements it.
type AccountReader interface {
	GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error)
	GetAccountData(ctx context.Context, account solana.PublicKey) ([]byte, error)
	GetMultipleAccountsData(ctx context.Context, accounts ...solana.PublicKey) ([][]byte, error)
}

var _ AccountReader = (*sdkrpc.Client)(nil)

// CreateLaunch builds initialize_launch for a new mint.
//
// The mint keypair is generated (random, vanity via WithVanitySuffix, or
// supplied with WithMintKey) and returned. It does not sign this
// transaction, but it must be kept: finalize creates the mint on pump and
// requires its signature.
//
// Example:
//
//	accts, args, ix, mintKey, err := autofill.CreateLaunch(ctx, rpc, cfg, creator,
//	    "Launch Token", "LPAD", uri, 85*units.LamportsPerSOL, time.Now().Add(72*time.Hour))
func CreateLaunch(ctx context.Context, rpc AccountReader, cfg config.Config, creator solana.PublicKey, name, symbol, uri string, targetLamports uint64, deadline time.Time, opts ...Option) (launchpad.InitializeLaunchAccounts, launchpad.InitializeLaunchArgs, solana.Instruction, solana.PrivateKey, error) {
	var (
		accts launchpad.InitializeLaunchAccounts
		args  launchpad.InitializeLaunchArgs
	)
	if err := types.ValidatePublicKey("creator", creator); err != nil {
		return accts, args, nil, nil, err
	}
	options := newOptions(opts)
	if err := types.ValidateLaunchParams(types.LaunchParams{
		Name:           name,
		Symbol:         symbol,
		URI:            uri,
		TargetLamports: targetLamports,
		Deadline:       deadline,
	}, options.Now()); err != nil {
		return accts, args, nil, nil, err
	}

	mintKey, err := generateMintKey(ctx, options)
	if err != nil {
		return accts, args, nil, nil, err
	}
	mint := mintKey.PublicKey()

	launchKey, _, err := launchpad.DeriveLaunchPDA(cfg.ProgramID, mint)
	if err != nil {
		return accts, args, nil, nil, fmt.Errorf("derive launch: %w", err)
	}
	escrow, _, err := launchpad.DeriveEscrowPDA(cfg.ProgramID, launchKey)
	if err != nil {
		return accts, args, nil, nil, fmt.Errorf("derive escrow: %w", err)
	}

	// A supplied mint may already have a launch.
	if options.MintKey != nil && rpc != nil {
		_, err := rpc.GetAccountData(ctx, launchKey)
		switch {
		case err == nil:
			return accts, args, nil, nil, fmt.Errorf("launch %s already exists for mint %s", launchKey, mint)
		case !errors.Is(err, sdkrpc.ErrAccountNotFound):
			return accts, args, nil, nil, fmt.Errorf("check launch %s: %w", launchKey, err)
		}
	}

	accts = launchpad.InitializeLaunchAccounts{
		Creator:       creator,
		Mint:          mint,
		Launch:        launchKey,
		Escrow:        escrow,
		SystemProgram: constants.SystemProgramID,
	}
	applyOverrides(&accts, options.Overrides)

	args = launchpad.InitializeLaunchArgs{
		Name:           name,
		Symbol:         symbol,
		Uri:            uri,
		TargetLamports: targetLamports,
		Deadline:       deadline.Unix(),
	}

	ix, err := launchpad.BuildInitializeLaunch(cfg.ProgramID, accts, args)
	if err != nil {
		return accts, args, nil, nil, err
	}

	writePreview(options, struct {
		Accounts launchpad.InitializeLaunchAccounts `json:"accounts"`
		Args     launchpad.InitializeLaunchArgs     `json:"args"`
		Mint     string                             `json:"mint"`
	}{accts, args, mint.String()})

	return accts, args, ix, mintKey, nil
}

// Contribute builds a contribution of amount lamports into a launch's
// escrow. The launch must be open and before its deadline.
func Contribute(ctx context.Context, rpc AccountReader, cfg config.Config, contributor, launchKey solana.PublicKey, amount uint64, opts ...Option) (launchpad.ContributeAccounts, launchpad.ContributeArgs, []solana.Instruction, error) {
	var accts launchpad.ContributeAccounts
	if rpc == nil {
		return accts, launchpad.ContributeArgs{}, nil, types.ErrNilRPC
	}
	if err := types.ValidatePublicKeys(map[string]solana.PublicKey{"contributor": contributor, "launch": launchKey}); err != nil {
		return accts, launchpad.ContributeArgs{}, nil, err
	}
	if err := types.ValidateAmount("amount", amount); err != nil {
		return accts, launchpad.ContributeArgs{}, nil, err
	}
	options := newOptions(opts)

	state, err := FetchLaunch(ctx, rpc, launchKey)
	if err != nil {
		return accts, launchpad.ContributeArgs{}, nil, err
	}
	if !state.IsOpen() {
		return accts, launchpad.ContributeArgs{}, nil, fmt.Errorf("launch %s: %w", launchKey, types.ErrLaunchNotOpen)
	}
	if options.Now().Unix() >= state.Deadline {
		return accts, launchpad.ContributeArgs{}, nil, fmt.Errorf("launch %s deadline passed: %w", launchKey, types.ErrLaunchNotOpen)
	}

	escrow, contribution, err := escrowAndContribution(cfg.ProgramID, launchKey, state, contributor)
	if err != nil {
		return accts, launchpad.ContributeArgs{}, nil, err
	}
	accts = launchpad.ContributeAccounts{
		Contributor:   contributor,
		Launch:        launchKey,
		Escrow:        escrow,
		Contribution:  contribution,
		SystemProgram: constants.SystemProgramID,
	}
	applyOverrides(&accts, options.Overrides)

	args := launchpad.ContributeArgs{Amount: amount}
	ix, err := launchpad.BuildContribute(cfg.ProgramID, accts, args)
	if err != nil {
		return accts, args, nil, err
	}
	instrs := appendJitoTip([]solana.Instruction{ix}, contributor, options)

	writePreview(options, struct {
		Accounts launchpad.ContributeAccounts `json:"accounts"`
		Args     launchpad.ContributeArgs     `json:"args"`
	}{accts, args})
	return accts, args, instrs, nil
}

// Withdraw builds a withdrawal of amount lamports from the contributor's
// position. The amount may not exceed what was contributed.
func Withdraw(ctx context.Context, rpc AccountReader, cfg config.Config, contributor, launchKey solana.PublicKey, amount uint64, opts ...Option) (launchpad.WithdrawAccounts, launchpad.WithdrawArgs, []solana.Instruction, error) {
	var accts launchpad.WithdrawAccounts
	if rpc == nil {
		return accts, launchpad.WithdrawArgs{}, nil, types.ErrNilRPC
	}
	if err := types.ValidatePublicKeys(map[string]solana.PublicKey{"contributor": contributor, "launch": launchKey}); err != nil {
		return accts, launchpad.WithdrawArgs{}, nil, err
	}
	if err := types.ValidateAmount("amount", amount); err != nil {
		return accts, launchpad.WithdrawArgs{}, nil, err
	}
	options := newOptions(opts)

	contributionKey, _, err := launchpad.DeriveContributionPDA(cfg.ProgramID, launchKey, contributor)
	if err != nil {
		return accts, launchpad.WithdrawArgs{}, nil, fmt.Errorf("derive contribution: %w", err)
	}
	state, contribution, err := fetchLaunchAndContribution(ctx, rpc, launchKey, contributionKey)
	if err != nil {
		return accts, launchpad.WithdrawArgs{}, nil, err
	}
	if state.IsFinalized() {
		return accts, launchpad.WithdrawArgs{}, nil, fmt.Errorf("launch %s already finalized: %w", launchKey, types.ErrLaunchNotOpen)
	}
	if amount > contribution.Amount {
		return accts, launchpad.WithdrawArgs{}, nil, fmt.Errorf("withdraw %d of %d: %w", amount, contribution.Amount, types.ErrWithdrawTooLarge)
	}

	escrow, _, err := escrowAndContribution(cfg.ProgramID, launchKey, state, contributor)
	if err != nil {
		return accts, launchpad.WithdrawArgs{}, nil, err
	}
	accts = launchpad.WithdrawAccounts{
		Contributor:   contributor,
		Launch:        launchKey,
		Escrow:        escrow,
		Contribution:  contributionKey,
		SystemProgram: constants.SystemProgramID,
	}
	applyOverrides(&accts, options.Overrides)

	args := launchpad.WithdrawArgs{Amount: amount}
	ix, err := launchpad.BuildWithdraw(cfg.ProgramID, accts, args)
	if err != nil {
		return accts, args, nil, err
	}

	writePreview(options, struct {
		Accounts launchpad.WithdrawAccounts `json:"accounts"`
		Args     launchpad.WithdrawArgs     `json:"args"`
	}{accts, args})
	return accts, args, appendJitoTip([]solana.Instruction{ix}, contributor, options), nil
}

// Finalize builds the finalize instruction with a min_tokens_out computed
// from the escrow balance at call time.
//
// The launch account, escrow balance and pump Global are read concurrently,
// then graduation.Estimate turns the balance into a slippage floor. When the
// escrow cannot support an estimate the error is returned unless
// WithAllowUnprotected is set, in which case min_tokens_out is 0.
//
// The returned instructions start with a compute budget; the launch mint
// must co-sign the transaction. The estimate goes stale as the curve moves,
// so submit promptly and call again after any delay.
func Finalize(ctx context.Context, rpc AccountReader, cfg config.Config, authority, launchKey solana.PublicKey, opts ...Option) (launchpad.FinalizeAccounts, launchpad.FinalizeArgs, []solana.Instruction, graduation.Result, error) {
	var (
		accts  launchpad.FinalizeAccounts
		args   launchpad.FinalizeArgs
		result graduation.Result
	)
	if rpc == nil {
		return accts, args, nil, result, types.ErrNilRPC
	}
	if err := types.ValidatePublicKeys(map[string]solana.PublicKey{"authority": authority, "launch": launchKey}); err != nil {
		return accts, args, nil, result, err
	}
	options := newOptions(opts)
	log := options.Logger.With().Str("launch", launchKey.String()).Logger()

	escrow, _, err := launchpad.DeriveEscrowPDA(cfg.ProgramID, launchKey)
	if err != nil {
		return accts, args, nil, result, fmt.Errorf("derive escrow: %w", err)
	}
	globalKey, _, err := pump.DeriveGlobalPDA()
	if err != nil {
		return accts, args, nil, result, fmt.Errorf("derive pump global: %w", err)
	}

	var (
		state   launchpad.Launch
		balance uint64
		global  pump.Global
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		state, err = FetchLaunch(gctx, rpc, launchKey)
		return err
	})
	g.Go(func() error {
		var err error
		if balance, err = rpc.GetBalance(gctx, escrow); err != nil {
			return fmt.Errorf("escrow balance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		data, err := rpc.GetAccountData(gctx, globalKey)
		if err != nil {
			if errors.Is(err, sdkrpc.ErrAccountNotFound) {
				return types.ErrGlobalConfigNotFound
			}
			return fmt.Errorf("pump global: %w", err)
		}
		if err := global.Unmarshal(data); err != nil {
			return fmt.Errorf("decode pump global: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return accts, args, nil, result, err
	}

	if !state.IsOpen() {
		return accts, args, nil, result, fmt.Errorf("launch %s: %w", launchKey, types.ErrLaunchNotOpen)
	}

	curve := cfg.Curve
	if options.LiveCurve {
		curve = graduation.CurveConstants{
			VirtualBaseReserves:      global.InitialVirtualSolReserves,
			VirtualTokenReserves:     global.InitialVirtualTokenReserves,
			InitialRealTokenReserves: global.InitialRealTokenReserves,
			GraduationThreshold:      cfg.Curve.GraduationThreshold,
		}
	}

	// Estimate fails only with ErrInsufficientEscrow or ErrDegenerateEstimate.
	result, err = graduation.Estimate(balance, curve, cfg.FixedCosts)
	if err != nil {
		if !options.AllowUnprotected {
			return accts, args, nil, result, err
		}
		log.Warn().Err(err).Msg("finalizing without slippage protection")
	}

	log.Debug().
		Str("escrow", units.FormatSOL(balance)).
		Str("spendable", units.FormatSOL(result.SpendableAmount)).
		Str("tokens_expected", units.FormatTokens(result.TokensExpected)).
		Str("min_tokens_out", units.FormatTokens(result.MinTokensOut)).
		Bool("graduation_reachable", result.GraduationReachable).
		Msg("graduation estimate")
	if result.Clamped {
		log.Warn().
			Str("unclamped_tokens", units.FormatTokens(result.UnclampedTokens)).
			Msg("estimate capped at the curve's real token reserves")
	}
	if err == nil && !result.GraduationReachable {
		log.Info().Msg("escrow below graduation threshold; curve will not migrate on finalize")
	}

	feeRecipient := firstNonZeroPK(options.FeeRecipient, firstNonZeroPK(global.AllFeeRecipients()...))
	if feeRecipient.IsZero() {
		return accts, args, nil, result, fmt.Errorf("fee recipient not found in pump global config")
	}

	accts, err = FinalizeAccountsFor(cfg.ProgramID, state, authority, feeRecipient)
	if err != nil {
		return accts, args, nil, result, err
	}
	applyOverrides(&accts, options.Overrides)

	args = launchpad.FinalizeArgs{MinTokensOut: result.MinTokensOut}
	if options.MinTokensOut != nil {
		args.MinTokensOut = *options.MinTokensOut
	}

	ix, err := launchpad.BuildFinalize(cfg.ProgramID, accts, args)
	if err != nil {
		return accts, args, nil, result, err
	}
	instrs := computeBudget(cfg.Compute, options).Instructions()
	instrs = append(instrs, ix)
	instrs = appendJitoTip(instrs, authority, options)

	writePreview(options, struct {
		Accounts launchpad.FinalizeAccounts `json:"accounts"`
		Args     launchpad.FinalizeArgs     `json:"args"`
		Estimate graduation.Result          `json:"estimate"`
	}{accts, args, result})
	return accts, args, instrs, result, nil
}

// FinalizeAccountsFor fills every finalize account from launch state without
// touching the network. The launch address is derived from state.Mint.
func FinalizeAccountsFor(programID solana.PublicKey, state launchpad.Launch, authority, feeRecipient solana.PublicKey) (launchpad.FinalizeAccounts, error) {
	var accts launchpad.FinalizeAccounts
	if err := types.ValidatePublicKeys(map[string]solana.PublicKey{
		"mint":         state.Mint,
		"creator":      state.Creator,
		"authority":    authority,
		"feeRecipient": feeRecipient,
	}); err != nil {
		return accts, err
	}

	launchKey, _, err := launchpad.DeriveLaunchPDA(programID, state.Mint)
	if err != nil {
		return accts, fmt.Errorf("derive launch: %w", err)
	}
	escrow := state.Escrow
	if escrow.IsZero() {
		if escrow, _, err = launchpad.DeriveEscrowPDA(programID, launchKey); err != nil {
			return accts, fmt.Errorf("derive escrow: %w", err)
		}
	}
	escrowATA, _, err := solana.FindAssociatedTokenAddress(escrow, state.Mint)
	if err != nil {
		return accts, fmt.Errorf("derive escrow token account: %w", err)
	}

	accts = launchpad.FinalizeAccounts{
		Authority:               authority,
		Launch:                  launchKey,
		Escrow:                  escrow,
		Mint:                    state.Mint,
		EscrowTokenAccount:      escrowATA,
		PumpFeeRecipient:        feeRecipient,
		PumpFeeProgram:          constants.PumpFeeProgramID,
		PumpProgram:             constants.PumpProgramID,
		MplTokenMetadataProgram: constants.MetadataProgramID,
		TokenProgram:            constants.TokenProgramID,
		AssociatedTokenProgram:  constants.AssociatedTokenProgramID,
		SystemProgram:           constants.SystemProgramID,
		Rent:                    constants.SysvarRentProgramID,
	}

	derive := []struct {
		name string
		dst  *solana.PublicKey
		fn   func() (solana.PublicKey, uint8, error)
	}{
		{"pump global", &accts.PumpGlobal, pump.DeriveGlobalPDA},
		{"bonding curve", &accts.PumpBondingCurve, func() (solana.PublicKey, uint8, error) { return pump.DeriveBondingCurvePDA(state.Mint) }},
		{"mint authority", &accts.PumpMintAuthority, pump.DeriveMintAuthorityPDA},
		{"metadata", &accts.PumpMetadata, func() (solana.PublicKey, uint8, error) { return pump.DeriveMetadataPDA(state.Mint) }},
		{"creator vault", &accts.PumpCreatorVault, func() (solana.PublicKey, uint8, error) { return pump.DeriveCreatorVaultPDA(state.Creator) }},
		{"event authority", &accts.PumpEventAuthority, pump.DeriveEventAuthorityPDA},
		{"global volume accumulator", &accts.PumpGlobalVolumeAccumulator, pump.DeriveGlobalVolumeAccumulatorPDA},
		{"user volume accumulator", &accts.PumpUserVolumeAccumulator, func() (solana.PublicKey, uint8, error) { return pump.DeriveUserVolumeAccumulatorPDA(escrow) }},
		{"fee config", &accts.PumpFeeConfig, pump.DeriveFeeConfigPDA},
	}
	for _, d := range derive {
		pk, _, err := d.fn()
		if err != nil {
			return accts, fmt.Errorf("derive %s: %w", d.name, err)
		}
		*d.dst = pk
	}

	abc, _, err := pump.DeriveAssociatedBondingCurve(accts.PumpBondingCurve, state.Mint)
	if err != nil {
		return accts, fmt.Errorf("derive associated bonding curve: %w", err)
	}
	accts.PumpAssociatedBondingCurve = abc
	return accts, nil
}

// Claim builds the claim of a contributor's share of the bought tokens,
// creating the contributor's token account first when it is missing.
func Claim(ctx context.Context, rpc AccountReader, cfg config.Config, contributor, launchKey solana.PublicKey, opts ...Option) (launchpad.ClaimAccounts, launchpad.ClaimArgs, []solana.Instruction, error) {
	var accts launchpad.ClaimAccounts
	if rpc == nil {
		return accts, launchpad.ClaimArgs{}, nil, types.ErrNilRPC
	}
	if err := types.ValidatePublicKeys(map[string]solana.PublicKey{"contributor": contributor, "launch": launchKey}); err != nil {
		return accts, launchpad.ClaimArgs{}, nil, err
	}
	options := newOptions(opts)

	contributionKey, _, err := launchpad.DeriveContributionPDA(cfg.ProgramID, launchKey, contributor)
	if err != nil {
		return accts, launchpad.ClaimArgs{}, nil, fmt.Errorf("derive contribution: %w", err)
	}
	state, contribution, err := fetchLaunchAndContribution(ctx, rpc, launchKey, contributionKey)
	if err != nil {
		return accts, launchpad.ClaimArgs{}, nil, err
	}
	if !state.IsFinalized() {
		return accts, launchpad.ClaimArgs{}, nil, fmt.Errorf("launch %s: %w", launchKey, types.ErrLaunchNotFinalized)
	}
	if contribution.Claimed {
		return accts, launchpad.ClaimArgs{}, nil, types.ErrAlreadyClaimed
	}

	escrow, _, err := escrowAndContribution(cfg.ProgramID, launchKey, state, contributor)
	if err != nil {
		return accts, launchpad.ClaimArgs{}, nil, err
	}
	escrowATA, _, err := solana.FindAssociatedTokenAddress(escrow, state.Mint)
	if err != nil {
		return accts, launchpad.ClaimArgs{}, nil, fmt.Errorf("derive escrow token account: %w", err)
	}
	contributorATA, _, err := solana.FindAssociatedTokenAddress(contributor, state.Mint)
	if err != nil {
		return accts, launchpad.ClaimArgs{}, nil, fmt.Errorf("derive contributor token account: %w", err)
	}

	accts = launchpad.ClaimAccounts{
		Contributor:             contributor,
		Launch:                  launchKey,
		Escrow:                  escrow,
		Contribution:            contributionKey,
		Mint:                    state.Mint,
		EscrowTokenAccount:      escrowATA,
		ContributorTokenAccount: contributorATA,
		TokenProgram:            constants.TokenProgramID,
		AssociatedTokenProgram:  constants.AssociatedTokenProgramID,
		SystemProgram:           constants.SystemProgramID,
	}
	applyOverrides(&accts, options.Overrides)

	instrs, err := ensureATABatch(ctx, rpc, []ataRequest{
		{Payer: contributor, Wallet: contributor, Mint: state.Mint},
	}, options.KnownATAs)
	if err != nil {
		return accts, launchpad.ClaimArgs{}, nil, err
	}

	args := launchpad.ClaimArgs{}
	ix, err := launchpad.BuildClaim(cfg.ProgramID, accts, args)
	if err != nil {
		return accts, args, nil, err
	}
	instrs = append(instrs, ix)

	writePreview(options, struct {
		Accounts launchpad.ClaimAccounts `json:"accounts"`
		Share    uint64                  `json:"estimatedShare"`
	}{accts, ClaimableTokens(state, contribution)})
	return accts, args, appendJitoTip(instrs, contributor, options), nil
}

// ClaimableTokens is the pro-rata share of the launch's bought tokens owed to
// a contribution, truncated. The program's own arithmetic is authoritative.
func ClaimableTokens(state launchpad.Launch, contribution launchpad.Contribution) uint64 {
	if state.TotalContributed == 0 || contribution.Claimed {
		return 0
	}
	hi, lo := bits.Mul64(state.TokensBought, contribution.Amount)
	if hi >= state.TotalContributed {
		return state.TokensBought
	}
	q, _ := bits.Div64(hi, lo, state.TotalContributed)
	// A contribution larger than the recorded total cannot claim more than
	// the launch bought.
	return min(q, state.TokensBought)
}

// FetchLaunch reads and decodes a launch account.
func FetchLaunch(ctx context.Context, rpc AccountReader, launchKey solana.PublicKey) (launchpad.Launch, error) {
	var state launchpad.Launch
	data, err := rpc.GetAccountData(ctx, launchKey)
	if err != nil {
		if errors.Is(err, sdkrpc.ErrAccountNotFound) {
			return state, fmt.Errorf("%s: %w", launchKey, types.ErrLaunchNotFound)
		}
		return state, fmt.Errorf("fetch launch: %w", err)
	}
	if err := state.Unmarshal(data); err != nil {
		return state, fmt.Errorf("decode launch %s: %w", launchKey, err)
	}
	return state, nil
}

func fetchLaunchAndContribution(ctx context.Context, rpc AccountReader, launchKey, contributionKey solana.PublicKey) (launchpad.Launch, launchpad.Contribution, error) {
	var (
		state        launchpad.Launch
		contribution launchpad.Contribution
	)
	data, err := rpc.GetMultipleAccountsData(ctx, launchKey, contributionKey)
	if err != nil {
		return state, contribution, fmt.Errorf("fetch launch accounts: %w", err)
	}
	if len(data) != 2 || len(data[0]) == 0 {
		return state, contribution, fmt.Errorf("%s: %w", launchKey, types.ErrLaunchNotFound)
	}
	if len(data[1]) == 0 {
		return state, contribution, fmt.Errorf("%s: %w", contributionKey, types.ErrContributionNotFound)
	}
	if err := state.Unmarshal(data[0]); err != nil {
		return state, contribution, fmt.Errorf("decode launch %s: %w", launchKey, err)
	}
	if err := contribution.Unmarshal(data[1]); err != nil {
		return state, contribution, fmt.Errorf("decode contribution %s: %w", contributionKey, err)
	}
	return state, contribution, nil
}

func escrowAndContribution(programID, launchKey solana.PublicKey, state launchpad.Launch, contributor solana.PublicKey) (solana.PublicKey, solana.PublicKey, error) {
	escrow := state.Escrow
	var err error
	if escrow.IsZero() {
		if escrow, _, err = launchpad.DeriveEscrowPDA(programID, launchKey); err != nil {
			return escrow, solana.PublicKey{}, fmt.Errorf("derive escrow: %w", err)
		}
	}
	contribution, _, err := launchpad.DeriveContributionPDA(programID, launchKey, contributor)
	if err != nil {
		return escrow, contribution, fmt.Errorf("derive contribution: %w", err)
	}
	return escrow, contribution, nil
}
