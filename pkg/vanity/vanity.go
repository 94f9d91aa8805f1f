// Package vanity searches for mint keypairs whose address matches a pattern,
// so a launch can ship a recognisable mint such as one ending in "LPAD".
package vanity

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/ninja0404/launchpad-go-sdk/pkg/wallet"
)

// Result represents a vanity address search result.
type Result struct {
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey
	Attempts   uint64
	Duration   time.Duration
}

// Signer returns the found key as a transaction signer.
func (r *Result) Signer() wallet.Local {
	return wallet.NewLocalFromPrivateKey(r.PrivateKey)
}

// Options configures vanity address generation.
type Options struct {
	Prefix          string
	Suffix          string
	Workers         int           // default: NumCPU
	Timeout         time.Duration // 0 = no timeout
	CaseInsensitive bool
}

// Validate rejects empty patterns and characters outside the base58 alphabet,
// which could never match.
func (o Options) Validate() error {
	if o.Prefix == "" && o.Suffix == "" {
		return fmt.Errorf("prefix or suffix is required")
	}
	for _, p := range []string{o.Prefix, o.Suffix} {
		if p == "" || o.CaseInsensitive {
			continue
		}
		if _, err := base58.Decode(p); err != nil {
			return fmt.Errorf("pattern %q is not base58: %w", p, err)
		}
	}
	return nil
}

// Generate searches for a keypair matching the specified criteria.
//
// Example:
//
//	result, err := vanity.Generate(ctx, vanity.Options{Suffix: "LPAD", Timeout: time.Minute})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("mint %s after %d attempts\n", result.PublicKey, result.Attempts)
func Generate(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	prefix, suffix := opts.Prefix, opts.Suffix
	if opts.CaseInsensitive {
		prefix = strings.ToLower(prefix)
		suffix = strings.ToLower(suffix)
	}

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if opts.Timeout > 0 {
		searchCtx, cancel = context.WithTimeout(searchCtx, opts.Timeout)
		defer cancel()
	}

	var (
		attempts atomic.Uint64
		once     sync.Once
		result   *Result
		wg       sync.WaitGroup
	)
	start := time.Now()

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for searchCtx.Err() == nil {
				key, err := solana.NewRandomPrivateKey()
				if err != nil {
					continue
				}
				n := attempts.Add(1)
				if !matches(key.PublicKey().String(), prefix, suffix, opts.CaseInsensitive) {
					continue
				}
				once.Do(func() {
					result = &Result{
						PrivateKey: key,
						PublicKey:  key.PublicKey(),
						Attempts:   n,
						Duration:   time.Since(start),
					}
					cancel()
				})
				return
			}
		}()
	}
	wg.Wait()

	if result != nil {
		return result, nil
	}
	return nil, fmt.Errorf("search cancelled after %d attempts: %w", attempts.Load(), searchCtx.Err())
}

func matches(addr, prefix, suffix string, fold bool) bool {
	if fold {
		addr = strings.ToLower(addr)
	}
	return strings.HasPrefix(addr, prefix) && strings.HasSuffix(addr, suffix)
}

// EstimateDifficulty estimates the average attempts needed for a pattern of
// the given total length. Saturates at math.MaxUint64.
func EstimateDifficulty(prefixLen, suffixLen int) uint64 {
	result := uint64(1)
	for i := 0; i < prefixLen+suffixLen; i++ {
		if result > math.MaxUint64/58 {
			return math.MaxUint64
		}
		result *= 58
	}
	return result
}
