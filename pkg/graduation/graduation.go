// Package graduation estimates the slippage floor passed to the launchpad
// finalize instruction.
//
// When a launch is finalized the launchpad program spends its escrow on the
// pump.fun bonding curve. Estimate models that purchase with the curve's
// constant-product invariant at its fresh state and returns a conservative
// minimum token output, so the finalize transaction reverts instead of
// executing at a worse rate than expected.
//
// The estimate is only valid for the escrow balance it was computed from.
// Re-run it whenever submission is delayed.
//
// Example:
//
//	res, err := graduation.Estimate(escrowLamports, graduation.DefaultCurve(), graduation.DefaultFixedCosts)
//	switch {
//	case errors.Is(err, graduation.ErrInsufficientEscrow):
//	    // top up the escrow or abort
//	case err != nil:
//	    return err
//	}
//	args := launchpad.FinalizeArgs{MinTokensOut: res.MinTokensOut}
package graduation

import (
	"errors"
	"fmt"
	"math/big"
)

const (
	// DefaultFixedCosts is the lamport amount the program is expected to
	// deduct (account rent plus buffer) before it buys on the curve.
	DefaultFixedCosts uint64 = 14_500_000

	// MinOutPercent is the share of the expected output accepted as the floor.
	MinOutPercent uint64 = 90
)

var (
	ErrInsufficientEscrow = errors.New("escrow balance does not cover fixed costs")
	ErrDegenerateEstimate = errors.New("estimated token output is not positive")

	// ErrInvalidCurve is returned by CurveConstants.Validate. Estimate never
	// returns it; bad constants surface as ErrDegenerateEstimate there.
	ErrInvalidCurve = errors.New("invalid curve constants")
)

// CurveConstants describes the fresh-state shape of the bonding curve.
// Amounts are in base units: lamports for the base currency, raw units
// (6 decimals) for the token.
type CurveConstants struct {
	VirtualBaseReserves      uint64
	VirtualTokenReserves     uint64
	InitialRealTokenReserves uint64
	// GraduationThreshold is the real base amount at which the curve
	// completes and migrates to the AMM.
	GraduationThreshold uint64
}

// DefaultCurve returns the pump.fun mainnet parameters.
func DefaultCurve() CurveConstants {
	return CurveConstants{
		VirtualBaseReserves:      30_000_000_000,
		VirtualTokenReserves:     1_073_000_000_000_000,
		InitialRealTokenReserves: 793_100_000_000_000,
		GraduationThreshold:      85_000_000_000,
	}
}

// Validate reports whether every reserve is positive and the real reserve
// fits inside the virtual one. Config loading uses it to reject bad
// settings early.
func (c CurveConstants) Validate() error {
	switch {
	case c.VirtualBaseReserves == 0:
		return fmt.Errorf("%w: virtual base reserves is zero", ErrInvalidCurve)
	case c.VirtualTokenReserves == 0:
		return fmt.Errorf("%w: virtual token reserves is zero", ErrInvalidCurve)
	case c.InitialRealTokenReserves == 0:
		return fmt.Errorf("%w: initial real token reserves is zero", ErrInvalidCurve)
	case c.InitialRealTokenReserves > c.VirtualTokenReserves:
		return fmt.Errorf("%w: real token reserves exceed virtual token reserves", ErrInvalidCurve)
	}
	return nil
}

// Result is the outcome of a successful estimate.
type Result struct {
	// SpendableAmount is the escrow balance minus fixed costs (lamports).
	SpendableAmount uint64
	// TokensExpected is the modeled curve output, capped at the real reserve.
	TokensExpected uint64
	// MinTokensOut is the slippage floor for the finalize instruction.
	MinTokensOut uint64
	// GraduationReachable reports whether the spend completes the curve.
	// Advisory only.
	GraduationReachable bool
	// Clamped is set when the modeled output exceeded the real token
	// reserve and the result was capped.
	Clamped bool
	// UnclampedTokens is the modeled output before capping.
	UnclampedTokens uint64
}

// EstimateError describes a failed estimate. It unwraps to
// ErrInsufficientEscrow or ErrDegenerateEstimate.
type EstimateError struct {
	Kind          error
	EscrowBalance uint64
	FixedCosts    uint64
	Spendable     uint64
}

func (e *EstimateError) Error() string {
	return fmt.Sprintf("graduation estimate: %v (escrow=%d fixed_costs=%d spendable=%d)",
		e.Kind, e.EscrowBalance, e.FixedCosts, e.Spendable)
}

func (e *EstimateError) Unwrap() error {
	return e.Kind
}

// Estimate computes the finalize slippage floor for escrowBalance lamports.
//
// It returns a zero Result and an *EstimateError when the escrow does not
// cover fixedCosts or when the curve yields no tokens. Misconfigured constants
// (a zero virtual token or real token reserve) fall in the second case.
// Callers decide whether to abort or submit without protection. Estimate is
// pure and safe for concurrent use.
func Estimate(escrowBalance uint64, curve CurveConstants, fixedCosts uint64) (Result, error) {
	if escrowBalance <= fixedCosts {
		return Result{}, &EstimateError{
			Kind:          ErrInsufficientEscrow,
			EscrowBalance: escrowBalance,
			FixedCosts:    fixedCosts,
		}
	}
	spendable := escrowBalance - fixedCosts

	vBase := new(big.Int).SetUint64(curve.VirtualBaseReserves)
	vToken := new(big.Int).SetUint64(curve.VirtualTokenReserves)

	// k = vBase * vToken overflows 64 bits for real parameters.
	k := new(big.Int).Mul(vBase, vToken)
	finalBase := new(big.Int).Add(vBase, new(big.Int).SetUint64(spendable))
	// Truncation overestimates the remaining tokens, which keeps the floor low.
	finalTokens := new(big.Int).Quo(k, finalBase)
	expected := new(big.Int).Sub(vToken, finalTokens)

	// A zero real reserve would clamp any output to nothing.
	if expected.Sign() <= 0 || curve.InitialRealTokenReserves == 0 {
		return Result{}, &EstimateError{
			Kind:          ErrDegenerateEstimate,
			EscrowBalance: escrowBalance,
			FixedCosts:    fixedCosts,
			Spendable:     spendable,
		}
	}

	// expected <= vToken, so it fits in uint64.
	tokens := expected.Uint64()
	res := Result{
		SpendableAmount:     spendable,
		TokensExpected:      tokens,
		MinTokensOut:        applyMargin(tokens),
		GraduationReachable: spendable >= curve.GraduationThreshold,
		UnclampedTokens:     tokens,
	}
	if tokens > curve.InitialRealTokenReserves {
		res.Clamped = true
		res.TokensExpected = curve.InitialRealTokenReserves
		res.MinTokensOut = applyMargin(curve.InitialRealTokenReserves)
	}
	return res, nil
}

// applyMargin returns amount * MinOutPercent / 100 without overflowing.
func applyMargin(amount uint64) uint64 {
	v := new(big.Int).SetUint64(amount)
	v.Mul(v, new(big.Int).SetUint64(MinOutPercent))
	v.Quo(v, big.NewInt(100))
	return v.Uint64()
}
