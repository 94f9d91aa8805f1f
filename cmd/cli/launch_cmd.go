package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/ninja0404/launchpad-go-sdk/pkg/autofill"
	"github.com/ninja0404/launchpad-go-sdk/pkg/ipfs"
	"github.com/ninja0404/launchpad-go-sdk/pkg/program/launchpad"
	"github.com/ninja0404/launchpad-go-sdk/pkg/quote"
	"github.com/ninja0404/launchpad-go-sdk/pkg/units"
	"github.com/ninja0404/launchpad-go-sdk/pkg/wallet"
)

var timeNow = time.Now

func newLaunchCmd(opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Create, fund, finalize and claim launchpad launches",
	}
	cmd.AddCommand(
		newLaunchCreateCmd(opts),
		newLaunchContributeCmd(opts),
		newLaunchWithdrawCmd(opts),
		newLaunchFinalizeCmd(opts),
		newLaunchClaimCmd(opts),
		newLaunchInfoCmd(opts),
	)
	return cmd
}

func newLaunchCreateCmd(opts *globalOpts) *cobra.Command {
	var (
		name, symbol, uri  string
		description, image string
		targetSOL          string
		deadline           string
		mintKeyPath        string
		mintKeyOut         string
		vanitySuffix       string
		vanityPrefix       string
		vanityTimeout      time.Duration
		common             commonFlags
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a launch for a new pump.fun mint",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := units.ParseSOL(targetSOL)
			if err != nil {
				return fmt.Errorf("target: %w", err)
			}
			end, err := parseDeadline(deadline, timeNow())
			if err != nil {
				return err
			}
			if mintKeyPath == "" && mintKeyOut == "" {
				return fmt.Errorf("--mint-key-out is required for a generated mint; finalize needs it to co-sign")
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			deps, err := newBuilder(cmd, opts)
			if err != nil {
				return err
			}

			if uri == "" {
				if image == "" {
					return fmt.Errorf("--uri or --image is required")
				}
				uri, err = uploadMetadata(cmd, opts, name, symbol, description, image)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "metadata uri: %s\n", uri)
			}

			afOpts, err := common.options(cmd, opts)
			if err != nil {
				return err
			}
			if mintKeyPath != "" {
				mint, err := wallet.Load(mintKeyPath)
				if err != nil {
					return fmt.Errorf("mint key: %w", err)
				}
				afOpts = append(afOpts, autofill.WithMintKey(mint.PrivateKey()))
			}
			if vanitySuffix != "" {
				afOpts = append(afOpts, autofill.WithVanitySuffix(vanitySuffix))
			}
			if vanityPrefix != "" {
				afOpts = append(afOpts, autofill.WithVanityPrefix(vanityPrefix))
			}
			if vanityTimeout > 0 {
				afOpts = append(afOpts, autofill.WithVanityTimeout(vanityTimeout))
			}

			accts, _, ix, mintKey, err := autofill.CreateLaunch(ctx, deps.rpc, opts.cfg, deps.signer.PublicKey(),
				name, symbol, uri, target, end, afOpts...)
			if err != nil {
				return err
			}
			if mintKeyOut != "" {
				if err := writeKeygenFile(mintKeyOut, mintKey); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "mint: %s\nlaunch: %s\nescrow: %s\n", accts.Mint, accts.Launch, accts.Escrow)
			return submit(ctx, cmd, deps, common.simulate, nil, ix)
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "token name")
	f.StringVar(&symbol, "symbol", "", "token symbol")
	f.StringVar(&uri, "uri", "", "metadata URI (omit to upload --image through ipfs.*)")
	f.StringVar(&description, "description", "", "token description for the uploaded metadata")
	f.StringVar(&image, "image", "", "token image file to upload when --uri is empty")
	f.StringVar(&targetSOL, "target", "", "funding target in SOL")
	f.StringVar(&deadline, "deadline", "72h", "deadline as RFC3339 or a duration from now")
	f.StringVar(&mintKeyPath, "mint-key", "", "use this mint keypair instead of generating one")
	f.StringVar(&mintKeyOut, "mint-key-out", "", "write the generated mint keypair here (solana-keygen json)")
	f.StringVar(&vanitySuffix, "vanity-suffix", "", "grind a mint ending with this suffix")
	f.StringVar(&vanityPrefix, "vanity-prefix", "", "grind a mint starting with this prefix")
	f.DurationVar(&vanityTimeout, "vanity-timeout", 0, "give up grinding after this long")
	common.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func uploadMetadata(cmd *cobra.Command, opts *globalOpts, name, symbol, description, imagePath string) (string, error) {
	client, err := ipfs.New(opts.cfg.IPFS, ipfs.WithLogger(opts.log))
	if err != nil {
		return "", err
	}
	f, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return client.UploadTokenMetadata(cmd.Context(), ipfs.TokenMetadata{
		Name:        name,
		Symbol:      symbol,
		Description: description,
		ShowName:    true,
	}, f, filepath.Base(imagePath))
}

func newLaunchContributeCmd(opts *globalOpts) *cobra.Command {
	return newAmountCmd(opts, "contribute", "Contribute SOL to an open launch", func(c amountCall) error {
		_, _, ixs, err := autofill.Contribute(c.ctx, c.deps.rpc, c.opts.cfg, c.deps.signer.PublicKey(), c.launch, c.amount, c.afOpts...)
		if err != nil {
			return err
		}
		return submit(c.ctx, c.cmd, c.deps, c.simulate, nil, ixs...)
	})
}

func newLaunchWithdrawCmd(opts *globalOpts) *cobra.Command {
	return newAmountCmd(opts, "withdraw", "Withdraw SOL from a launch before it finalizes", func(c amountCall) error {
		_, _, ixs, err := autofill.Withdraw(c.ctx, c.deps.rpc, c.opts.cfg, c.deps.signer.PublicKey(), c.launch, c.amount, c.afOpts...)
		if err != nil {
			return err
		}
		return submit(c.ctx, c.cmd, c.deps, c.simulate, nil, ixs...)
	})
}

func newLaunchFinalizeCmd(opts *globalOpts) *cobra.Command {
	var (
		launchStr        string
		mintKeyPath      string
		feeRecipient     string
		minTokensOut     uint64
		allowUnprotected bool
		liveCurve        bool
		common           commonFlags
	)

	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Spend the escrow on the pump.fun curve with an estimated slippage floor",
		RunE: func(cmd *cobra.Command, args []string) error {
			launchKey, err := parsePubkey("launch", launchStr)
			if err != nil {
				return err
			}
			mint, err := wallet.Load(mintKeyPath)
			if err != nil {
				return fmt.Errorf("mint key: %w", err)
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()

			deps, err := newBuilder(cmd, opts)
			if err != nil {
				return err
			}
			afOpts, err := common.options(cmd, opts)
			if err != nil {
				return err
			}
			if allowUnprotected {
				afOpts = append(afOpts, autofill.WithAllowUnprotected())
			}
			if cmd.Flags().Changed("min-tokens-out") {
				afOpts = append(afOpts, autofill.WithMinTokensOut(minTokensOut))
			}
			if liveCurve {
				afOpts = append(afOpts, autofill.WithLiveCurve())
			}
			if feeRecipient != "" {
				pk, err := parsePubkey("fee-recipient", feeRecipient)
				if err != nil {
					return err
				}
				afOpts = append(afOpts, autofill.WithFeeRecipient(pk))
			}

			accts, fargs, ixs, est, err := autofill.Finalize(ctx, deps.rpc, opts.cfg, deps.signer.PublicKey(), launchKey, afOpts...)
			if err != nil {
				return err
			}
			if accts.Mint != mint.PublicKey() {
				return fmt.Errorf("mint key %s does not match launch mint %s", mint.PublicKey(), accts.Mint)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "spendable: %s SOL\nmin tokens out: %s\n",
				units.FormatSOL(est.SpendableAmount), units.FormatTokens(fargs.MinTokensOut))
			return submit(ctx, cmd, deps, common.simulate, []wallet.Signer{mint}, ixs...)
		},
	}

	f := cmd.Flags()
	f.StringVar(&launchStr, "launch", "", "launch pubkey")
	f.StringVar(&mintKeyPath, "mint-key", "", "mint keypair written by launch create (co-signs)")
	f.StringVar(&feeRecipient, "fee-recipient", "", "pump fee recipient (default from pump Global)")
	f.Uint64Var(&minTokensOut, "min-tokens-out", 0, "override the estimated slippage floor (raw units)")
	f.BoolVar(&allowUnprotected, "allow-unprotected", false, "submit with min_tokens_out=0 when no estimate is possible")
	f.BoolVar(&liveCurve, "live-curve", false, "read the curve shape from the pump Global account")
	common.register(cmd)
	_ = cmd.MarkFlagRequired("launch")
	_ = cmd.MarkFlagRequired("mint-key")
	return cmd
}

func newLaunchClaimCmd(opts *globalOpts) *cobra.Command {
	var (
		launchStr string
		common    commonFlags
	)
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Claim the signer's share of a finalized launch",
		RunE: func(cmd *cobra.Command, args []string) error {
			launchKey, err := parsePubkey("launch", launchStr)
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			deps, err := newBuilder(cmd, opts)
			if err != nil {
				return err
			}
			afOpts, err := common.options(cmd, opts)
			if err != nil {
				return err
			}
			_, _, ixs, err := autofill.Claim(ctx, deps.rpc, opts.cfg, deps.signer.PublicKey(), launchKey, afOpts...)
			if err != nil {
				return err
			}
			return submit(ctx, cmd, deps, common.simulate, nil, ixs...)
		},
	}
	cmd.Flags().StringVar(&launchStr, "launch", "", "launch pubkey")
	common.register(cmd)
	_ = cmd.MarkFlagRequired("launch")
	return cmd
}

func newLaunchInfoCmd(opts *globalOpts) *cobra.Command {
	var (
		launchStr      string
		contributorStr string
	)
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show launch progress and what finalizing now would buy",
		RunE: func(cmd *cobra.Command, args []string) error {
			launchKey, err := parsePubkey("launch", launchStr)
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			client := newClient(opts)
			cfg := opts.cfg
			st, err := quote.LaunchStatus(ctx, client, cfg.ProgramID, launchKey, cfg.Curve, cfg.FixedCosts, timeNow())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			l := st.Launch
			fmt.Fprintf(out, "name:         %s (%s)\n", l.Name, l.Symbol)
			fmt.Fprintf(out, "mint:         %s\n", l.Mint)
			fmt.Fprintf(out, "creator:      %s\n", l.Creator)
			fmt.Fprintf(out, "status:       %s\n", statusName(l.Status))
			fmt.Fprintf(out, "contributed:  %s / %s SOL (%s%%, %d contributors)\n",
				units.FormatSOL(l.TotalContributed), units.FormatSOL(l.TargetLamports),
				st.Progress.StringFixed(2), l.ContributorCount)
			fmt.Fprintf(out, "escrow:       %s SOL\n", units.FormatSOL(st.EscrowBalance))
			if st.Expired {
				fmt.Fprintf(out, "deadline:     passed (%s)\n", time.Unix(l.Deadline, 0).UTC().Format(time.RFC3339))
			} else {
				fmt.Fprintf(out, "deadline:     %s (in %s)\n", time.Unix(l.Deadline, 0).UTC().Format(time.RFC3339), st.TimeLeft.Round(time.Second))
			}
			switch {
			case l.Status == launchpad.StatusFinalized:
				fmt.Fprintf(out, "tokens bought: %s\n", units.FormatTokens(l.TokensBought))
			case st.Estimate != nil:
				fmt.Fprintf(out, "finalize now: %s tokens (floor %s)\n",
					units.FormatTokens(st.Estimate.TokensExpected), units.FormatTokens(st.Estimate.MinTokensOut))
			default:
				fmt.Fprintf(out, "finalize now: no estimate (%v)\n", st.EstimateErr)
			}

			if contributorStr != "" {
				contributor, err := parsePubkey("contributor", contributorStr)
				if err != nil {
					return err
				}
				share, err := quote.ClaimQuote(ctx, client, cfg.ProgramID, launchKey, contributor)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "claimable:    %s\n", units.FormatTokens(share))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&launchStr, "launch", "", "launch pubkey")
	cmd.Flags().StringVar(&contributorStr, "contributor", "", "also show this contributor's claimable tokens")
	_ = cmd.MarkFlagRequired("launch")
	return cmd
}

func statusName(s uint8) string {
	switch s {
	case launchpad.StatusOpen:
		return "open"
	case launchpad.StatusFinalized:
		return "finalized"
	case launchpad.StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// amountCall carries what contribute and withdraw share.
type amountCall struct {
	ctx      context.Context
	cmd      *cobra.Command
	opts     *globalOpts
	deps     *runtimeDeps
	launch   solana.PublicKey
	amount   uint64
	simulate bool
	afOpts   []autofill.Option
}

func newAmountCmd(opts *globalOpts, use, short string, run func(amountCall) error) *cobra.Command {
	var (
		launchStr string
		amountSOL string
		common    commonFlags
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			launchKey, err := parsePubkey("launch", launchStr)
			if err != nil {
				return err
			}
			amount, err := units.ParseSOL(amountSOL)
			if err != nil {
				return fmt.Errorf("amount: %w", err)
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			deps, err := newBuilder(cmd, opts)
			if err != nil {
				return err
			}
			afOpts, err := common.options(cmd, opts)
			if err != nil {
				return err
			}
			return run(amountCall{
				ctx:      ctx,
				cmd:      cmd,
				opts:     opts,
				deps:     deps,
				launch:   launchKey,
				amount:   amount,
				simulate: common.simulate,
				afOpts:   afOpts,
			})
		},
	}
	cmd.Flags().StringVar(&launchStr, "launch", "", "launch pubkey")
	cmd.Flags().StringVar(&amountSOL, "amount", "", "amount in SOL")
	common.register(cmd)
	_ = cmd.MarkFlagRequired("launch")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
