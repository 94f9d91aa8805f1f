// Package units converts between on-chain base units and human amounts.
package units

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// SOLDecimals is the number of decimals of the native currency.
	SOLDecimals int32 = 9
	// TokenDecimals is the decimals of every pump.fun mint.
	TokenDecimals int32 = 6

	LamportsPerSOL uint64 = 1_000_000_000
)

// FromBase converts a base-unit amount into a decimal with the given scale.
func FromBase(amount uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromUint64(amount).Shift(-decimals)
}

// ToBase parses a human amount ("1.5") into base units. Fractions finer than
// decimals and negative values are rejected.
func ToBase(s string, decimals int32) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q is negative", s)
	}
	shifted := d.Shift(decimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("amount %q has more than %d decimals", s, decimals)
	}
	bi := shifted.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("amount %q overflows uint64", s)
	}
	return bi.Uint64(), nil
}

// FormatSOL renders lamports as SOL, e.g. "1.5".
func FormatSOL(lamports uint64) string {
	return FromBase(lamports, SOLDecimals).String()
}

// FormatTokens renders raw token units with TokenDecimals.
func FormatTokens(raw uint64) string {
	return FromBase(raw, TokenDecimals).String()
}

// ParseSOL parses a SOL amount into lamports.
func ParseSOL(s string) (uint64, error) {
	return ToBase(s, SOLDecimals)
}

// ParseTokens parses a token amount into raw units.
func ParseTokens(s string) (uint64, error) {
	return ToBase(s, TokenDecimals)
}

// Percent returns part/whole*100 rounded to two places. A zero whole yields zero.
func Percent(part, whole uint64) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromUint64(part).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromUint64(whole), 2)
}
