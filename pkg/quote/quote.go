// Package quote provides read-only estimates for launches and pump.fun curves.
//
// Quotes are non-binding: they read chain state once and model the outcome
// locally, so they can differ from execution when state moves.
//
// Example usage:
//
//	// How many tokens would finalize buy right now?
//	res, err := quote.GraduationQuote(ctx, rpc, cfg.ProgramID, launch, cfg.Curve, cfg.FixedCosts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("min tokens out: %s\n", units.FormatTokens(res.MinTokensOut))
package quote

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ninja0404/launchpad-go-sdk/pkg/autofill"
	"github.com/ninja0404/launchpad-go-sdk/pkg/graduation"
	"github.com/ninja0404/launchpad-go-sdk/pkg/program/launchpad"
	"github.com/ninja0404/launchpad-go-sdk/pkg/program/pump"
	sdkrpc "github.com/ninja0404/launchpad-go-sdk/pkg/rpc"
	"github.com/ninja0404/launchpad-go-sdk/pkg/types"
	"github.com/ninja0404/launchpad-go-sdk/pkg/units"
)

// QuoteResult contains the result of a curve trade quote.
type QuoteResult struct {
	// ExpectedOut is the estimated output amount (tokens for buy, lamports for sell).
	ExpectedOut uint64

	// MinOut is ExpectedOut with slippage applied.
	MinOut uint64

	// PriceImpactBps is (execution - spot) / spot in basis points, signed
	// toward the trader's loss.
	PriceImpactBps uint64

	// SpotPrice is lamports per raw token unit before the trade, scaled by 1e9.
	SpotPrice uint64

	// ExecutionPrice is the average price paid or received, scaled by 1e9.
	ExecutionPrice uint64
}

// Status is a snapshot of a launch and what finalizing it now would do.
type Status struct {
	Launch        launchpad.Launch
	EscrowBalance uint64
	// Progress is TotalContributed / TargetLamports in percent.
	Progress decimal.Decimal
	Expired  bool
	TimeLeft time.Duration
	// Estimate is nil when the escrow cannot support one yet.
	Estimate    *graduation.Result
	EstimateErr error
}

// GraduationQuote reads the escrow balance of a launch and runs the
// graduation estimate on it.
func GraduationQuote(ctx context.Context, rpc autofill.AccountReader, programID, launchKey solana.PublicKey, curve graduation.CurveConstants, fixedCosts uint64) (graduation.Result, error) {
	if rpc == nil {
		return graduation.Result{}, types.ErrNilRPC
	}
	escrow, _, err := launchpad.DeriveEscrowPDA(programID, launchKey)
	if err != nil {
		return graduation.Result{}, fmt.Errorf("derive escrow: %w", err)
	}
	balance, err := rpc.GetBalance(ctx, escrow)
	if err != nil {
		return graduation.Result{}, fmt.Errorf("escrow balance: %w", err)
	}
	return graduation.Estimate(balance, curve, fixedCosts)
}

// LiveCurveConstants reads the fresh-curve reserves from pump's Global
// account. The graduation threshold is not stored on chain and is taken
// from threshold.
func LiveCurveConstants(ctx context.Context, rpc autofill.AccountReader, threshold uint64) (graduation.CurveConstants, error) {
	if rpc == nil {
		return graduation.CurveConstants{}, types.ErrNilRPC
	}
	globalKey, _, err := pump.DeriveGlobalPDA()
	if err != nil {
		return graduation.CurveConstants{}, fmt.Errorf("derive pump global: %w", err)
	}
	data, err := rpc.GetAccountData(ctx, globalKey)
	if err != nil {
		if errors.Is(err, sdkrpc.ErrAccountNotFound) {
			return graduation.CurveConstants{}, types.ErrGlobalConfigNotFound
		}
		return graduation.CurveConstants{}, err
	}
	var global pump.Global
	if err := global.Unmarshal(data); err != nil {
		return graduation.CurveConstants{}, fmt.Errorf("decode pump global: %w", err)
	}
	curve := graduation.CurveConstants{
		VirtualBaseReserves:      global.InitialVirtualSolReserves,
		VirtualTokenReserves:     global.InitialVirtualTokenReserves,
		InitialRealTokenReserves: global.InitialRealTokenReserves,
		GraduationThreshold:      threshold,
	}
	return curve, curve.Validate()
}

// LaunchStatus fetches a launch and its escrow balance concurrently and
// summarizes progress and the current finalize estimate.
func LaunchStatus(ctx context.Context, rpc autofill.AccountReader, programID, launchKey solana.PublicKey, curve graduation.CurveConstants, fixedCosts uint64, now time.Time) (*Status, error) {
	if rpc == nil {
		return nil, types.ErrNilRPC
	}
	escrow, _, err := launchpad.DeriveEscrowPDA(programID, launchKey)
	if err != nil {
		return nil, fmt.Errorf("derive escrow: %w", err)
	}

	var st Status
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		st.Launch, err = autofill.FetchLaunch(gctx, rpc, launchKey)
		return err
	})
	g.Go(func() error {
		var err error
		st.EscrowBalance, err = rpc.GetBalance(gctx, escrow)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	st.Progress = units.Percent(st.Launch.TotalContributed, st.Launch.TargetLamports)
	deadline := time.Unix(st.Launch.Deadline, 0)
	st.Expired = !now.Before(deadline)
	if !st.Expired {
		st.TimeLeft = deadline.Sub(now)
	}

	if st.Launch.IsOpen() {
		res, err := graduation.Estimate(st.EscrowBalance, curve, fixedCosts)
		if err != nil {
			st.EstimateErr = err
		} else {
			st.Estimate = &res
		}
	}
	return &st, nil
}

// ClaimQuote returns the tokens a contributor can claim from a finalized
// launch, or 0 before finalize.
func ClaimQuote(ctx context.Context, rpc autofill.AccountReader, programID, launchKey, contributor solana.PublicKey) (uint64, error) {
	if rpc == nil {
		return 0, types.ErrNilRPC
	}
	contributionKey, _, err := launchpad.DeriveContributionPDA(programID, launchKey, contributor)
	if err != nil {
		return 0, fmt.Errorf("derive contribution: %w", err)
	}
	data, err := rpc.GetMultipleAccountsData(ctx, launchKey, contributionKey)
	if err != nil {
		return 0, err
	}
	if len(data) != 2 || len(data[0]) == 0 {
		return 0, types.ErrLaunchNotFound
	}
	if len(data[1]) == 0 {
		return 0, types.ErrContributionNotFound
	}
	var (
		state launchpad.Launch
		c     launchpad.Contribution
	)
	if err := state.Unmarshal(data[0]); err != nil {
		return 0, fmt.Errorf("decode launch: %w", err)
	}
	if err := c.Unmarshal(data[1]); err != nil {
		return 0, fmt.Errorf("decode contribution: %w", err)
	}
	if !state.IsFinalized() {
		return 0, nil
	}
	return autofill.ClaimableTokens(state, c), nil
}

// PumpBuyQuote estimates the token output for a SOL input on a live pump
// bonding curve.
func PumpBuyQuote(ctx context.Context, rpc autofill.AccountReader, mint solana.PublicKey, solLamports uint64, slippageBps ...uint64) (*QuoteResult, error) {
	if rpc == nil {
		return nil, types.ErrNilRPC
	}
	if err := types.ValidateAmount("solLamports", solLamports); err != nil {
		return nil, err
	}
	slip, err := slippage(slippageBps)
	if err != nil {
		return nil, err
	}
	bc, err := fetchBondingCurve(ctx, rpc, mint)
	if err != nil {
		return nil, err
	}
	if bc.Complete {
		return nil, fmt.Errorf("bonding curve for %s is complete", mint)
	}

	out := buyOut(bc, solLamports)
	spot, exec, impact := priceMetrics(bc, solLamports, out, true)
	return &QuoteResult{
		ExpectedOut:    out,
		MinOut:         applySlippage(out, slip),
		PriceImpactBps: impact,
		SpotPrice:      spot,
		ExecutionPrice: exec,
	}, nil
}

// PumpSellQuote estimates the lamport output for a token input on a live
// pump bonding curve.
func PumpSellQuote(ctx context.Context, rpc autofill.AccountReader, mint solana.PublicKey, tokenAmount uint64, slippageBps ...uint64) (*QuoteResult, error) {
	if rpc == nil {
		return nil, types.ErrNilRPC
	}
	if err := types.ValidateAmount("tokenAmount", tokenAmount); err != nil {
		return nil, err
	}
	slip, err := slippage(slippageBps)
	if err != nil {
		return nil, err
	}
	bc, err := fetchBondingCurve(ctx, rpc, mint)
	if err != nil {
		return nil, err
	}
	if bc.Complete {
		return nil, fmt.Errorf("bonding curve for %s is complete", mint)
	}

	out := sellOut(bc, tokenAmount)
	spot, exec, impact := priceMetrics(bc, out, tokenAmount, false)
	return &QuoteResult{
		ExpectedOut:    out,
		MinOut:         applySlippage(out, slip),
		PriceImpactBps: impact,
		SpotPrice:      spot,
		ExecutionPrice: exec,
	}, nil
}

// GetPumpPrice returns the current spot price of a pump bonding curve as
// lamports per raw token unit, scaled by 1e9.
func GetPumpPrice(ctx context.Context, rpc autofill.AccountReader, mint solana.PublicKey) (uint64, error) {
	if rpc == nil {
		return 0, types.ErrNilRPC
	}
	bc, err := fetchBondingCurve(ctx, rpc, mint)
	if err != nil {
		return 0, err
	}
	if bc.VirtualTokenReserves == 0 {
		return 0, fmt.Errorf("bonding curve has zero token reserves")
	}
	return spotPrice(bc), nil
}

// --- internal helpers ---

func fetchBondingCurve(ctx context.Context, rpc autofill.AccountReader, mint solana.PublicKey) (pump.BondingCurve, error) {
	var bc pump.BondingCurve
	addr, _, err := pump.DeriveBondingCurvePDA(mint)
	if err != nil {
		return bc, fmt.Errorf("derive bonding curve: %w", err)
	}
	data, err := rpc.GetAccountData(ctx, addr)
	if err != nil {
		if errors.Is(err, sdkrpc.ErrAccountNotFound) {
			return bc, fmt.Errorf("mint %s: %w", mint, types.ErrBondingCurveNotFound)
		}
		return bc, err
	}
	if err := bc.Unmarshal(data); err != nil {
		return bc, fmt.Errorf("decode bonding curve: %w", err)
	}
	return bc, nil
}

// buyOut is the constant-product output, capped at the real reserve.
func buyOut(bc pump.BondingCurve, solIn uint64) uint64 {
	// tokens_out = sol_in * vt / (vs + sol_in)
	num := new(big.Int).Mul(new(big.Int).SetUint64(solIn), new(big.Int).SetUint64(bc.VirtualTokenReserves))
	den := new(big.Int).Add(new(big.Int).SetUint64(bc.VirtualSolReserves), new(big.Int).SetUint64(solIn))
	out := new(big.Int).Div(num, den).Uint64()
	if out > bc.RealTokenReserves {
		out = bc.RealTokenReserves
	}
	return out
}

func sellOut(bc pump.BondingCurve, tokenIn uint64) uint64 {
	// sol_out = token_in * vs / (vt + token_in)
	num := new(big.Int).Mul(new(big.Int).SetUint64(tokenIn), new(big.Int).SetUint64(bc.VirtualSolReserves))
	den := new(big.Int).Add(new(big.Int).SetUint64(bc.VirtualTokenReserves), new(big.Int).SetUint64(tokenIn))
	out := new(big.Int).Div(num, den).Uint64()
	if out > bc.RealSolReserves {
		out = bc.RealSolReserves
	}
	return out
}

func spotPrice(bc pump.BondingCurve) uint64 {
	return scaledRatio(bc.VirtualSolReserves, bc.VirtualTokenReserves)
}

// scaledRatio returns num * 1e9 / den, saturating at MaxUint64.
func scaledRatio(num, den uint64) uint64 {
	if den == 0 {
		return 0
	}
	r := new(big.Int).SetUint64(num)
	r.Mul(r, big.NewInt(1e9))
	r.Div(r, new(big.Int).SetUint64(den))
	if !r.IsUint64() {
		return ^uint64(0)
	}
	return r.Uint64()
}

func priceMetrics(bc pump.BondingCurve, solAmount, tokenAmount uint64, isBuy bool) (spot, exec, impactBps uint64) {
	if tokenAmount == 0 {
		return 0, 0, 0
	}
	spot = spotPrice(bc)
	exec = scaledRatio(solAmount, tokenAmount)
	if spot == 0 {
		return spot, exec, 0
	}
	switch {
	case isBuy && exec > spot:
		impactBps = scaledBps(exec-spot, spot)
	case !isBuy && spot > exec:
		impactBps = scaledBps(spot-exec, spot)
	}
	return spot, exec, impactBps
}

func scaledBps(diff, base uint64) uint64 {
	r := new(big.Int).Mul(new(big.Int).SetUint64(diff), big.NewInt(10_000))
	return r.Div(r, new(big.Int).SetUint64(base)).Uint64()
}

func slippage(bps []uint64) (uint64, error) {
	if len(bps) == 0 {
		return 0, nil
	}
	if err := types.ValidateSlippage(bps[0]); err != nil {
		return 0, err
	}
	return bps[0], nil
}

func applySlippage(amount uint64, slippageBps uint64) uint64 {
	if slippageBps >= 10_000 {
		return 0
	}
	r := new(big.Int).Mul(new(big.Int).SetUint64(amount), new(big.Int).SetUint64(10_000-slippageBps))
	return r.Div(r, big.NewInt(10_000)).Uint64()
}
