package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/ninja0404/launchpad-go-sdk/pkg/autofill"
	"github.com/ninja0404/launchpad-go-sdk/pkg/txbuilder"
	"github.com/ninja0404/launchpad-go-sdk/pkg/wallet"
)

// parsePubkey converts base58 string to PublicKey.
func parsePubkey(label, v string) (solana.PublicKey, error) {
	if v == "" {
		return solana.PublicKey{}, fmt.Errorf("%s is required", label)
	}
	pk, err := solana.PublicKeyFromBase58(v)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%s invalid pubkey: %w", label, err)
	}
	return pk, nil
}

// parseDeadline accepts RFC3339 or a duration from now such as 72h.
func parseDeadline(v string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return now.Add(d), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("deadline %q: want RFC3339 or a duration like 72h", v)
	}
	return t, nil
}

// commonFlags are the autofill knobs shared by every launch subcommand.
type commonFlags struct {
	overridePath string
	preview      bool
	simulate     bool
	cuLimit      uint32
	cuPrice      uint64
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.overridePath, "override-json", "", "optional JSON map of account name to pubkey overrides")
	cmd.Flags().BoolVar(&f.preview, "preview", false, "print the resolved accounts and args before sending")
	cmd.Flags().BoolVar(&f.simulate, "simulate", false, "simulate instead of sending")
	cmd.Flags().Uint32Var(&f.cuLimit, "compute-unit-limit", 0, "override compute unit limit")
	cmd.Flags().Uint64Var(&f.cuPrice, "compute-unit-price", 0, "override compute unit price (micro-lamports)")
}

func (f *commonFlags) options(cmd *cobra.Command, opts *globalOpts) ([]autofill.Option, error) {
	out := []autofill.Option{autofill.WithLogger(opts.log)}
	if f.overridePath != "" {
		raw, err := os.ReadFile(f.overridePath)
		if err != nil {
			return nil, fmt.Errorf("read overrides: %w", err)
		}
		m, err := autofill.MergeOverridesFromJSON(nil, raw)
		if err != nil {
			return nil, fmt.Errorf("parse overrides: %w", err)
		}
		out = append(out, autofill.WithOverrides(m))
	}
	if f.preview {
		out = append(out, autofill.WithPreview(cmd.OutOrStdout()))
	}
	if f.cuLimit > 0 {
		out = append(out, autofill.WithComputeUnitLimit(f.cuLimit))
	}
	if f.cuPrice > 0 {
		out = append(out, autofill.WithComputeUnitPrice(f.cuPrice))
	}
	return out, nil
}

// submit simulates or sends ixs signed by the fee payer plus extra signers.
func submit(ctx context.Context, cmd *cobra.Command, deps *runtimeDeps, simulate bool, extra []wallet.Signer, ixs ...solana.Instruction) error {
	if simulate {
		res, err := deps.builder.Simulate(ctx, deps.signer, extra, ixs...)
		if err != nil {
			return err
		}
		return printSimResult(cmd, res)
	}
	sig, err := deps.builder.BuildSignSendAndConfirm(ctx, deps.signer, extra, txbuilder.ConfirmationConfirmed, ixs...)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "tx signature: %s\n", sig)
	return nil
}

// writeKeygenFile stores key in solana-keygen JSON format (array of bytes).
func writeKeygenFile(path string, key solana.PrivateKey) error {
	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	bz, err := json.Marshal(ints)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, bz, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v interface{}) {
	bz, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(bz)))
}
