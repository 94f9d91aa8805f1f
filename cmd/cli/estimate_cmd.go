package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ninja0404/launchpad-go-sdk/pkg/graduation"
	"github.com/ninja0404/launchpad-go-sdk/pkg/quote"
	"github.com/ninja0404/launchpad-go-sdk/pkg/units"
)

func newEstimateCmd(opts *globalOpts) *cobra.Command {
	var (
		escrowSOL string
		fixedSOL  string
		liveCurve bool
		launchStr string
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the tokens a finalize buys for an escrow balance",
		Long: "Runs the graduation estimate offline for --escrow, or against the " +
			"on-chain escrow balance of --launch.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			fixed := cfg.FixedCosts
			if fixedSOL != "" {
				v, err := units.ParseSOL(fixedSOL)
				if err != nil {
					return fmt.Errorf("fixed-costs: %w", err)
				}
				fixed = v
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			curve := cfg.Curve
			if liveCurve {
				c, err := quote.LiveCurveConstants(ctx, newClient(opts), curve.GraduationThreshold)
				if err != nil {
					return err
				}
				curve = c
			}

			var (
				res     graduation.Result
				balance uint64
				err     error
			)
			switch {
			case launchStr != "":
				res, balance, err = estimateLaunch(ctx, opts, launchStr, curve, fixed)
			case escrowSOL != "":
				balance, err = units.ParseSOL(escrowSOL)
				if err != nil {
					return fmt.Errorf("escrow: %w", err)
				}
				res, err = graduation.Estimate(balance, curve, fixed)
			default:
				return fmt.Errorf("--escrow or --launch is required")
			}
			if err != nil {
				if errors.Is(err, graduation.ErrInsufficientEscrow) {
					return fmt.Errorf("escrow %s SOL does not cover fixed costs %s SOL: %w",
						units.FormatSOL(balance), units.FormatSOL(fixed), err)
				}
				return err
			}
			printEstimate(cmd, balance, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&escrowSOL, "escrow", "", "escrow balance in SOL (offline)")
	cmd.Flags().StringVar(&launchStr, "launch", "", "launch pubkey (reads the escrow balance)")
	cmd.Flags().StringVar(&fixedSOL, "fixed-costs", "", "fixed costs in SOL (default from config)")
	cmd.Flags().BoolVar(&liveCurve, "live-curve", false, "read the curve shape from the pump Global account")
	return cmd
}

func estimateLaunch(ctx context.Context, opts *globalOpts, launchStr string, curve graduation.CurveConstants, fixed uint64) (graduation.Result, uint64, error) {
	launchKey, err := parsePubkey("launch", launchStr)
	if err != nil {
		return graduation.Result{}, 0, err
	}
	st, err := quote.LaunchStatus(ctx, newClient(opts), opts.cfg.ProgramID, launchKey, curve, fixed, timeNow())
	if err != nil {
		return graduation.Result{}, 0, err
	}
	if st.Estimate == nil {
		return graduation.Result{}, st.EscrowBalance, st.EstimateErr
	}
	return *st.Estimate, st.EscrowBalance, nil
}

func printEstimate(cmd *cobra.Command, balance uint64, res graduation.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "escrow:          %s SOL\n", units.FormatSOL(balance))
	fmt.Fprintf(out, "spendable:       %s SOL\n", units.FormatSOL(res.SpendableAmount))
	fmt.Fprintf(out, "tokens expected: %s\n", units.FormatTokens(res.TokensExpected))
	fmt.Fprintf(out, "min tokens out:  %s (%d raw)\n", units.FormatTokens(res.MinTokensOut), res.MinTokensOut)
	fmt.Fprintf(out, "graduates:       %t\n", res.GraduationReachable)
	if res.Clamped {
		fmt.Fprintf(out, "clamped:         modeled %s exceeds the real reserve\n", units.FormatTokens(res.UnclampedTokens))
	}
}
