package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	sdkconfig "github.com/ninja0404/launchpad-go-sdk/pkg/config"
	"github.com/ninja0404/launchpad-go-sdk/pkg/jito"
	sdkrpc "github.com/ninja0404/launchpad-go-sdk/pkg/rpc"
	"github.com/ninja0404/launchpad-go-sdk/pkg/txbuilder"
	"github.com/ninja0404/launchpad-go-sdk/pkg/units"
	"github.com/ninja0404/launchpad-go-sdk/pkg/wallet"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOpts struct {
	configPath    string
	rpcURL        string
	commitment    string
	keypair       string
	programID     string
	skipPreflight bool
	useJito       bool
	logLevel      string
	timeoutSec    int

	// resolved in PersistentPreRunE
	cfg sdkconfig.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	root := &cobra.Command{
		Use:           "launchcli",
		Short:         "Launchpad SDK CLI (launches, graduation estimates, social, ipfs)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (yaml/json/toml); LAUNCHPAD_* env vars also apply")
	pf.StringVar(&opts.rpcURL, "rpc-url", "", "RPC endpoint (overrides config)")
	pf.StringVar(&opts.commitment, "commitment", "", "RPC commitment level (overrides config)")
	pf.StringVar(&opts.keypair, "keypair", os.Getenv("LAUNCHPAD_KEYPAIR"), "signer: solana-keygen json path or base58 private key")
	pf.StringVar(&opts.programID, "program-id", "", "launchpad program id (overrides config)")
	pf.BoolVar(&opts.skipPreflight, "skip-preflight", false, "skip preflight checks")
	pf.BoolVar(&opts.useJito, "jito", false, "send through the Jito block engine configured under jito.*")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	pf.IntVar(&opts.timeoutSec, "timeout-sec", 60, "overall command timeout in seconds")

	root.AddCommand(
		newConfigCmd(opts),
		newEstimateCmd(opts),
		newLaunchCmd(opts),
		newAccountCmd(opts),
		newSocialCmd(opts),
		newIPFSCmd(opts),
	)
	return root
}

// resolve loads the config file and env, then applies flag overrides.
func (o *globalOpts) resolve(cmd *cobra.Command) error {
	cfg, err := sdkconfig.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.rpcURL != "" {
		cfg.RPC.RPCURL = o.rpcURL
	}
	if o.commitment != "" {
		cfg.RPC.Commitment = o.commitment
	}
	if o.programID != "" {
		pk, err := parsePubkey("program-id", o.programID)
		if err != nil {
			return err
		}
		cfg.ProgramID = pk
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	o.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(parseLogLevel(cfg.LogLevel)).
		With().Timestamp().Logger()
	cfg.RPC.Logger = o.log
	o.cfg = cfg
	return nil
}

func (o *globalOpts) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	if o.timeoutSec <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), time.Duration(o.timeoutSec)*time.Second)
}

func newConfigCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "network=%s\nrpc=%s\ncommitment=%s\n", cfg.RPC.Network, cfg.RPC.ResolveRPCURL(), cfg.RPC.Commitment)
			fmt.Fprintf(out, "program_id=%s\nfixed_costs=%s SOL\n", cfg.ProgramID, units.FormatSOL(cfg.FixedCosts))
			fmt.Fprintf(out, "curve.virtual_base=%d\ncurve.virtual_token=%d\ncurve.initial_real_token=%d\ncurve.graduation_threshold=%s SOL\n",
				cfg.Curve.VirtualBaseReserves, cfg.Curve.VirtualTokenReserves, cfg.Curve.InitialRealTokenReserves,
				units.FormatSOL(cfg.Curve.GraduationThreshold))
			fmt.Fprintf(out, "compute.unit_limit=%d\ncompute.unit_price=%d\n", cfg.Compute.UnitLimit, cfg.Compute.UnitPrice)
			fmt.Fprintf(out, "social.base_url=%s\nipfs.api_url=%s\njito.endpoint=%s\n", cfg.Social.BaseURL, cfg.IPFS.APIURL, cfg.Jito.Endpoint)
			return nil
		},
	}
}

type runtimeDeps struct {
	builder *txbuilder.Builder
	signer  wallet.Signer
	rpc     *sdkrpc.Client
}

// newClient builds a read-only RPC client.
func newClient(opts *globalOpts) *sdkrpc.Client {
	return sdkrpc.NewClient(opts.cfg.RPC)
}

// newBuilder builds the RPC client, transaction builder and signer.
func newBuilder(cmd *cobra.Command, opts *globalOpts) (*runtimeDeps, error) {
	if opts.keypair == "" {
		return nil, fmt.Errorf("signer is required (use --keypair or LAUNCHPAD_KEYPAIR)")
	}
	signer, err := wallet.Load(opts.keypair)
	if err != nil {
		return nil, err
	}

	cfg := opts.cfg
	client := newClient(opts)
	builder := txbuilder.NewBuilder(client, rpc.CommitmentType(cfg.RPC.Commitment)).
		WithSkipPreflight(opts.skipPreflight).
		WithComputeBudget(txbuilder.ComputeBudget{UnitLimit: cfg.Compute.UnitLimit, UnitPrice: cfg.Compute.UnitPrice}).
		WithLogger(opts.log)
	if opts.useJito {
		if cfg.Jito.Endpoint == "" {
			return nil, fmt.Errorf("--jito requires jito.endpoint in config")
		}
		jc := jito.NewClient(cfg.Jito.Endpoint, cfg.Jito.UUID).WithLogger(opts.log)
		builder.WithJito(jc, cfg.Jito.TipLamports)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	if _, err := client.GetLatestBlockhash(ctx); err != nil {
		opts.log.Warn().Err(err).Msg("rpc ping failed")
	}

	return &runtimeDeps{builder: builder, signer: signer, rpc: client}, nil
}

func parseLogLevel(lvl string) zerolog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
