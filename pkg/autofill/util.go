package autofill

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/launchpad-go-sdk/pkg/config"
	"github.com/ninja0404/launchpad-go-sdk/pkg/constants"
	"github.com/ninja0404/launchpad-go-sdk/pkg/jito"
	"github.com/ninja0404/launchpad-go-sdk/pkg/txbuilder"
	"github.com/ninja0404/launchpad-go-sdk/pkg/vanity"
)

// applyOverrides sets exported fields from a map (key: field name, lowerCamel or snake_case).
func applyOverrides(target interface{}, m map[string]solana.PublicKey) {
	if len(m) == 0 {
		return
	}
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr {
		panic("target must be pointer to struct")
	}
	val = reflect.Indirect(val)
	if val.Kind() != reflect.Struct {
		panic("target must be struct")
	}
	pkType := reflect.TypeOf(solana.PublicKey{})
	t := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Type != pkType {
			continue
		}
		if key := pickKey(field.Name, m); key != "" {
			val.Field(i).Set(reflect.ValueOf(m[key]))
		}
	}
}

func pickKey(name string, m map[string]solana.PublicKey) string {
	for _, k := range []string{name, lowerCamel(name), snake(name)} {
		if _, ok := m[k]; ok {
			return k
		}
	}
	return ""
}

func lowerCamel(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func snake(name string) string {
	var parts []string
	cur := ""
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			parts = append(parts, strings.ToLower(cur))
			cur = string(r)
		} else {
			cur += string(r)
		}
	}
	if cur != "" {
		parts = append(parts, strings.ToLower(cur))
	}
	return strings.Join(parts, "_")
}

func firstNonZeroPK(list ...solana.PublicKey) solana.PublicKey {
	for _, pk := range list {
		if !pk.IsZero() {
			return pk
		}
	}
	return solana.PublicKey{}
}

// ataRequest holds parameters for a single ATA ensure check.
type ataRequest struct {
	Payer  solana.PublicKey
	Wallet solana.PublicKey
	Mint   solana.PublicKey
}

// ensureATABatch checks ATAs in one batch RPC call and returns create
// instructions for the missing ones, skipping any listed in known.
func ensureATABatch(ctx context.Context, rpc AccountReader, requests []ataRequest, known []solana.PublicKey) ([]solana.Instruction, error) {
	skip := make(map[solana.PublicKey]struct{}, len(known))
	for _, k := range known {
		skip[k] = struct{}{}
	}

	var (
		pending []ataRequest
		addrs   []solana.PublicKey
	)
	for _, req := range requests {
		ata, _, err := solana.FindAssociatedTokenAddress(req.Wallet, req.Mint)
		if err != nil {
			return nil, fmt.Errorf("derive ATA for %s: %w", req.Wallet, err)
		}
		if _, ok := skip[ata]; ok {
			continue
		}
		pending = append(pending, req)
		addrs = append(addrs, ata)
	}
	if len(addrs) == 0 {
		return nil, nil
	}

	data, err := rpc.GetMultipleAccountsData(ctx, addrs...)
	if err != nil {
		return nil, fmt.Errorf("fetch token accounts: %w", err)
	}

	var out []solana.Instruction
	for i, req := range pending {
		if len(data[i]) > 0 {
			continue
		}
		metas := []*solana.AccountMeta{
			solana.NewAccountMeta(req.Payer, true, true),
			solana.NewAccountMeta(addrs[i], true, false),
			solana.NewAccountMeta(req.Wallet, false, false),
			solana.NewAccountMeta(req.Mint, false, false),
			solana.NewAccountMeta(constants.SystemProgramID, false, false),
			solana.NewAccountMeta(constants.TokenProgramID, false, false),
		}
		// 1 = CreateIdempotent
		out = append(out, solana.NewInstruction(constants.AssociatedTokenProgramID, metas, []byte{1}))
	}
	return out, nil
}

// generateMintKey returns the configured mint key, a vanity key or a random one.
func generateMintKey(ctx context.Context, options *Options) (solana.PrivateKey, error) {
	if options.MintKey != nil {
		return options.MintKey, nil
	}
	if options.VanitySuffix != "" || options.VanityPrefix != "" {
		timeout := options.VanityTimeout
		if timeout == 0 {
			timeout = 5 * time.Minute
		}
		result, err := vanity.Generate(ctx, vanity.Options{
			Prefix:  options.VanityPrefix,
			Suffix:  options.VanitySuffix,
			Timeout: timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("generate vanity address: %w", err)
		}
		return result.PrivateKey, nil
	}
	mintKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate mint keypair: %w", err)
	}
	return mintKey, nil
}

// computeBudget merges per-call options over the configured budget.
func computeBudget(cfg config.ComputeConfig, options *Options) txbuilder.ComputeBudget {
	cb := txbuilder.ComputeBudget{UnitLimit: cfg.UnitLimit, UnitPrice: cfg.UnitPrice}
	if options.ComputeUnitLimit > 0 {
		cb.UnitLimit = options.ComputeUnitLimit
	}
	if options.ComputeUnitPrice > 0 {
		cb.UnitPrice = options.ComputeUnitPrice
	}
	return cb
}

// appendJitoTip appends a Jito tip transfer instruction if configured.
func appendJitoTip(instrs []solana.Instruction, from solana.PublicKey, options *Options) []solana.Instruction {
	if options.JitoTipLamports == 0 {
		return instrs
	}
	return append(instrs, jito.TipInstruction(from, options.JitoTipLamports, options.JitoTipAccount))
}

func writePreview(options *Options, v interface{}) {
	if options.Preview == nil {
		return
	}
	_ = json.NewEncoder(options.Preview).Encode(v)
}
