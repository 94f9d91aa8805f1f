package autofill

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/ninja0404/launchpad-go-sdk/pkg/jito"
)

// Options configures autofill helpers.
type Options struct {
	Overrides       map[string]solana.PublicKey
	Preview         io.Writer
	VanitySuffix    string
	VanityPrefix    string
	VanityTimeout   time.Duration      // default: 5 minutes
	MintKey         solana.PrivateKey  // use this mint instead of generating one
	KnownATAs       []solana.PublicKey // skip the existence check for these
	JitoTipLamports uint64             // 0 = no tip
	JitoTipAccount  solana.PublicKey   // zero = random from the predefined list

	// Compute budget; zero values fall back to config.ComputeConfig.
	ComputeUnitLimit uint32
	ComputeUnitPrice uint64

	// Finalize only.
	AllowUnprotected bool
	MinTokensOut     *uint64
	LiveCurve        bool
	FeeRecipient     solana.PublicKey

	Now    func() time.Time
	Logger zerolog.Logger
}

// Option functional option.
type Option func(*Options)

func newOptions(opts []Option) *Options {
	o := &Options{Now: time.Now, Logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithOverrides replaces auto-filled accounts by field name, lowerCamel or snake_case.
func WithOverrides(m map[string]solana.PublicKey) Option {
	return func(o *Options) { o.Overrides = m }
}

// WithPreview writes the filled accounts and args as JSON to w.
func WithPreview(w io.Writer) Option {
	return func(o *Options) { o.Preview = w }
}

// WithVanitySuffix generates a mint address ending with the specified suffix.
func WithVanitySuffix(suffix string) Option {
	return func(o *Options) { o.VanitySuffix = suffix }
}

// WithVanityPrefix generates a mint address starting with the specified prefix.
func WithVanityPrefix(prefix string) Option {
	return func(o *Options) { o.VanityPrefix = prefix }
}

// WithVanityTimeout sets the timeout for vanity address generation.
func WithVanityTimeout(d time.Duration) Option {
	return func(o *Options) { o.VanityTimeout = d }
}

// WithMintKey uses an existing mint keypair for CreateLaunch. The same key
// must sign the finalize transaction later.
func WithMintKey(key solana.PrivateKey) Option {
	return func(o *Options) { o.MintKey = key }
}

// WithKnownATAs skips ATA existence checks for the specified addresses.
func WithKnownATAs(atas ...solana.PublicKey) Option {
	return func(o *Options) { o.KnownATAs = append(o.KnownATAs, atas...) }
}

// WithJitoTip appends a tip transfer to the instruction list.
//
// Example:
//
//	autofill.Finalize(ctx, rpc, cfg, authority, launch,
//	    autofill.WithJitoTip(1_000_000), // 0.001 SOL
//	)
func WithJitoTip(tipLamports uint64) Option {
	return func(o *Options) {
		o.JitoTipLamports = tipLamports
		if o.JitoTipAccount.IsZero() {
			o.JitoTipAccount = jito.GetRandomTipAccountLocal()
		}
	}
}

// WithJitoTipAccount specifies a custom Jito tip account.
func WithJitoTipAccount(account solana.PublicKey) Option {
	return func(o *Options) { o.JitoTipAccount = account }
}

// WithComputeUnitLimit overrides the configured compute unit limit.
func WithComputeUnitLimit(units uint32) Option {
	return func(o *Options) { o.ComputeUnitLimit = units }
}

// WithComputeUnitPrice overrides the configured priority fee in micro-lamports.
func WithComputeUnitPrice(microLamports uint64) Option {
	return func(o *Options) { o.ComputeUnitPrice = microLamports }
}

// WithAllowUnprotected lets Finalize proceed with min_tokens_out = 0 when the
// escrow is too small to estimate. The finalize is then open to sandwiching.
func WithAllowUnprotected() Option {
	return func(o *Options) { o.AllowUnprotected = true }
}

// WithMinTokensOut sets min_tokens_out explicitly. The estimate is still
// computed and returned.
func WithMinTokensOut(n uint64) Option {
	return func(o *Options) { o.MinTokensOut = &n }
}

// WithLiveCurve reads virtual and real reserves from pump's Global account
// instead of the configured constants.
func WithLiveCurve() Option {
	return func(o *Options) { o.LiveCurve = true }
}

// WithFeeRecipient pins the pump fee recipient instead of reading Global.
func WithFeeRecipient(pk solana.PublicKey) Option {
	return func(o *Options) { o.FeeRecipient = pk }
}

// WithClock replaces time.Now for deadline checks.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Now = now }
}

// WithLogger sets the logger for estimate diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(o *Options) { o.Logger = log }
}

// MergeOverridesFromJSON merges base58 pubkeys from JSON blob into map.
func MergeOverridesFromJSON(dst map[string]solana.PublicKey, jsonBytes []byte) (map[string]solana.PublicKey, error) {
	if dst == nil {
		dst = make(map[string]solana.PublicKey)
	}
	var m map[string]string
	if err := json.Unmarshal(jsonBytes, &m); err != nil {
		return nil, err
	}
	for k, v := range m {
		pk, err := solana.PublicKeyFromBase58(v)
		if err != nil {
			return nil, err
		}
		dst[k] = pk
	}
	return dst, nil
}
