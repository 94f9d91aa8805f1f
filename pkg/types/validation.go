package types

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"
)

// Metadata limits enforced by the token metadata program.
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200
)

// LaunchParams are the user-supplied fields of initialize_launch.
type LaunchParams struct {
	Name           string
	Symbol         string
	URI            string
	TargetLamports uint64
	Deadline       time.Time
}

// ValidateLaunchParams checks metadata lengths, a positive target and a
// deadline after now.
func ValidateLaunchParams(p LaunchParams, now time.Time) error {
	if err := validateText("name", p.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validateText("symbol", p.Symbol, MaxSymbolLength); err != nil {
		return err
	}
	if err := validateText("uri", p.URI, MaxURILength); err != nil {
		return err
	}
	if p.TargetLamports == 0 {
		return NewValidationError("targetLamports", "must be greater than 0")
	}
	if !p.Deadline.After(now) {
		return NewValidationError("deadline", "must be in the future")
	}
	return nil
}

func validateText(field, v string, max int) error {
	if v == "" {
		return NewValidationError(field, "cannot be empty")
	}
	if !utf8.ValidString(v) {
		return NewValidationError(field, "must be valid UTF-8")
	}
	if len(v) > max {
		return NewValidationError(field, fmt.Sprintf("must be at most %d bytes, got %d", max, len(v)))
	}
	return nil
}

// ValidateAmount validates a lamport amount is non-zero.
func ValidateAmount(field string, amount uint64) error {
	if amount == 0 {
		return NewValidationError(field, "must be greater than 0")
	}
	return nil
}

// ValidateSlippage validates slippage basis points.
func ValidateSlippage(slippageBps uint64) error {
	if slippageBps > 10000 {
		return NewValidationError("slippageBps", "must be <= 10000 (100%)")
	}
	return nil
}

// ValidatePublicKey validates a public key is not zero.
func ValidatePublicKey(name string, key solana.PublicKey) error {
	if key.IsZero() {
		return NewValidationError(name, "cannot be zero")
	}
	return nil
}

// ValidatePublicKeys validates multiple public keys.
func ValidatePublicKeys(keys map[string]solana.PublicKey) error {
	for name, key := range keys {
		if err := ValidatePublicKey(name, key); err != nil {
			return err
		}
	}
	return nil
}
