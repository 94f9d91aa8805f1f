// Package rpc wraps the solana-go JSON-RPC client with the timeout, retry and
// rate limiting settings from config.RPCConfig. Every launchpad read and send
// goes through it.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ninja0404/launchpad-go-sdk/pkg/config"
)

// ErrAccountNotFound is returned when a requested account does not exist.
var ErrAccountNotFound = errors.New("account not found")

// Client wraps solana-go rpc.Client with retry, timeout, and rate limiting.
type Client struct {
	raw     *solanarpc.Client
	cfg     config.RPCConfig
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewClient builds a configured Client.
func NewClient(cfg config.RPCConfig) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit.RPS > 0 {
		burst := cfg.RateLimit.Burst
		if burst == 0 {
			burst = int(cfg.RateLimit.RPS * 2)
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), burst)
	}

	log := cfg.Logger
	if log.GetLevel() == zerolog.NoLevel {
		log = zerolog.Nop()
	}

	return &Client{
		raw:     solanarpc.New(cfg.ResolveRPCURL()),
		cfg:     cfg,
		limiter: limiter,
		log:     log.With().Str("component", "rpc").Logger(),
	}
}

// Raw exposes the underlying solana-go client.
func (c *Client) Raw() *solanarpc.Client {
	return c.raw
}

// Commitment returns the configured commitment level.
func (c *Client) Commitment() solanarpc.CommitmentType {
	if c.cfg.Commitment == "" {
		return solanarpc.CommitmentFinalized
	}
	return solanarpc.CommitmentType(c.cfg.Commitment)
}

// GetLatestBlockhash fetches the latest blockhash at the configured commitment.
func (c *Client) GetLatestBlockhash(ctx context.Context) (*solanarpc.GetLatestBlockhashResult, error) {
	var out *solanarpc.GetLatestBlockhashResult
	err := c.call(ctx, "getLatestBlockhash", func(ctx context.Context) error {
		var err error
		out, err = c.raw.GetLatestBlockhash(ctx, c.Commitment())
		return err
	})
	return out, err
}

// GetBalance returns the lamport balance of an account. Escrow balances are
// read through here before estimating a graduation.
func (c *Client) GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	var lamports uint64
	err := c.call(ctx, "getBalance", func(ctx context.Context) error {
		res, err := c.raw.GetBalance(ctx, account, c.Commitment())
		if err != nil {
			return err
		}
		lamports = res.Value
		return nil
	})
	return lamports, err
}

// GetAccountData returns the raw data of an account, or ErrAccountNotFound.
func (c *Client) GetAccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	var data []byte
	err := c.call(ctx, "getAccountInfo", func(ctx context.Context) error {
		res, err := c.raw.GetAccountInfoWithOpts(ctx, account, &solanarpc.GetAccountInfoOpts{
			Commitment: c.Commitment(),
			Encoding:   solana.EncodingBase64,
		})
		if err != nil {
			if errors.Is(err, solanarpc.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}
		if res == nil || res.Value == nil {
			return ErrAccountNotFound
		}
		data = res.Value.Data.GetBinary()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", account, err)
	}
	return data, nil
}

// GetMultipleAccountsData returns account data in request order. Missing
// accounts yield a nil entry.
func (c *Client) GetMultipleAccountsData(ctx context.Context, accounts ...solana.PublicKey) ([][]byte, error) {
	if len(accounts) == 0 {
		return nil, nil
	}
	out := make([][]byte, len(accounts))
	err := c.call(ctx, "getMultipleAccounts", func(ctx context.Context) error {
		res, err := c.raw.GetMultipleAccountsWithOpts(ctx, accounts, &solanarpc.GetMultipleAccountsOpts{
			Commitment: c.Commitment(),
			Encoding:   solana.EncodingBase64,
		})
		if err != nil {
			return err
		}
		if res == nil || len(res.Value) != len(accounts) {
			return fmt.Errorf("unexpected account count")
		}
		for i, acc := range res.Value {
			if acc != nil {
				out[i] = acc.Data.GetBinary()
			}
		}
		return nil
	})
	return out, err
}

// GetTokenBalance returns the raw token amount held by a token account.
func (c *Client) GetTokenBalance(ctx context.Context, tokenAccount solana.PublicKey) (uint64, error) {
	var amount uint64
	err := c.call(ctx, "getTokenAccountBalance", func(ctx context.Context) error {
		res, err := c.raw.GetTokenAccountBalance(ctx, tokenAccount, c.Commitment())
		if err != nil {
			return err
		}
		if res == nil || res.Value == nil {
			return ErrAccountNotFound
		}
		var perr error
		amount, perr = strconv.ParseUint(res.Value.Amount, 10, 64)
		return perr
	})
	return amount, err
}

// GetSignatureStatus returns the status of a single signature, or nil if the
// cluster has not seen it yet.
func (c *Client) GetSignatureStatus(ctx context.Context, sig solana.Signature) (*solanarpc.SignatureStatusesResult, error) {
	var out *solanarpc.SignatureStatusesResult
	err := c.call(ctx, "getSignatureStatuses", func(ctx context.Context) error {
		res, err := c.raw.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			return err
		}
		if res != nil && len(res.Value) > 0 {
			out = res.Value[0]
		}
		return nil
	})
	return out, err
}

// SendTransaction submits a signed transaction.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction, opts solanarpc.TransactionOpts) (solana.Signature, error) {
	var sig solana.Signature
	err := c.call(ctx, "sendTransaction", func(ctx context.Context) error {
		var err error
		sig, err = c.raw.SendTransactionWithOpts(ctx, tx, opts)
		return err
	})
	return sig, err
}

// SimulateTransaction simulates a transaction for debugging.
func (c *Client) SimulateTransaction(ctx context.Context, tx *solana.Transaction, opts *solanarpc.SimulateTransactionOpts) (*solanarpc.SimulateTransactionResponse, error) {
	var res *solanarpc.SimulateTransactionResponse
	err := c.call(ctx, "simulateTransaction", func(ctx context.Context) error {
		var err error
		res, err = c.raw.SimulateTransactionWithOpts(ctx, tx, opts)
		return err
	})
	return res, err
}

func (c *Client) call(ctx context.Context, op string, fn func(context.Context) error) error {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if !c.cfg.Retry.Enabled {
		return fn(ctx)
	}

	attempts := c.cfg.Retry.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		backoff := c.backoff(i)
		c.log.Debug().
			Str("op", op).
			Int("attempt", i+1).
			Dur("backoff", backoff).
			Err(err).
			Msg("rpc retry")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", op, attempts, err)
}

func (c *Client) backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := c.cfg.Retry.InitialBackoff
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay > c.cfg.Retry.MaxBackoff && c.cfg.Retry.MaxBackoff > 0 {
			delay = c.cfg.Retry.MaxBackoff
			break
		}
	}
	if c.cfg.Retry.Jitter && delay > 1 {
		jitter := rand.Int63n(int64(delay / 2))
		delay = delay/2 + time.Duration(jitter)
	}
	return delay
}

// retryable reports whether an error is worth another attempt. Missing
// accounts and caller cancellation are final; transport and node errors are
// retried.
func retryable(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "invalid param") || strings.Contains(msg, "invalid request") {
		return false
	}
	return true
}
