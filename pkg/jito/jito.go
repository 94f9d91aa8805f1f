// Package jito submits launchpad transactions through the Jito Block Engine.
//
// Finalize spends the whole escrow on a fresh bonding curve in one
// transaction, which makes it an obvious sandwich target. Sending it as a
// single-transaction bundle with a tip keeps it out of the public mempool.
//
// For more information, see: https://github.com/jito-labs/jito-go-rpc
package jito

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	jitorpc "github.com/jito-labs/jito-go-rpc"
	"github.com/rs/zerolog"
)

// Default Jito Block Engine endpoints
const (
	MainnetBlockEngine = "https://mainnet.block-engine.jito.wtf/api/v1"
	TestnetBlockEngine = "https://testnet.block-engine.jito.wtf/api/v1"
)

// MainnetBlockEngines contains all available Jito mainnet endpoints.
var MainnetBlockEngines = []string{
	"https://mainnet.block-engine.jito.wtf/api/v1",
	"https://amsterdam.mainnet.block-engine.jito.wtf/api/v1",
	"https://frankfurt.mainnet.block-engine.jito.wtf/api/v1",
	"https://ny.mainnet.block-engine.jito.wtf/api/v1",
	"https://tokyo.mainnet.block-engine.jito.wtf/api/v1",
}

// MainnetTipAccounts are the official tip accounts. They rarely change, so
// picking one locally avoids a round trip per transaction.
var MainnetTipAccounts = []solana.PublicKey{
	solana.MustPublicKeyFromBase58("96gYZGLnJYVFmbjzopPSU6QiEV5fGqZNyN9nmNhvrZU5"),
	solana.MustPublicKeyFromBase58("HFqU5x63VTqvQss8hp11i4wVV8bD44PvwucfZ2bU7gRe"),
	solana.MustPublicKeyFromBase58("Cw8CFyM9FkoMi7K7Crf6HNQqf4uEMzpKw6QNghXLvLkY"),
	solana.MustPublicKeyFromBase58("ADaUMid9yfUytqMBgopwjb2DTLSokTSzL1zt6iGPaS49"),
	solana.MustPublicKeyFromBase58("DfXygSm4jCyNCybVYYK6DwvWqjKee8pbDmJGcLWNDXjh"),
	solana.MustPublicKeyFromBase58("ADuUkR4vqLUMWXxW9gh6D6L8pMSawimctcNZ5pGwDcEt"),
	solana.MustPublicKeyFromBase58("DttWaMuVvTiduZRnguLF7jNxTgiMBZ1hyAumKUiL2KRL"),
	solana.MustPublicKeyFromBase58("3AVi9Tg9Uo68tJfuvoKvqKNWKkC5wPdSSdeBnizKZ6jT"),
}

// GetRandomTipAccountLocal returns a random tip account from the pre-defined list.
func GetRandomTipAccountLocal() solana.PublicKey {
	return MainnetTipAccounts[rand.Intn(len(MainnetTipAccounts))]
}

// TipInstruction transfers lamports from payer to a tip account. A zero
// account picks one from MainnetTipAccounts.
func TipInstruction(payer solana.PublicKey, lamports uint64, account solana.PublicKey) solana.Instruction {
	if account.IsZero() {
		account = GetRandomTipAccountLocal()
	}
	return system.NewTransferInstruction(lamports, payer, account).Build()
}

// Client wraps the Jito RPC client with multi-endpoint support and retry logic.
type Client struct {
	endpoints    []string
	uuid         string
	currentIndex uint32
	maxRetries   int
	retryDelay   time.Duration
	log          zerolog.Logger
}

// NewClient creates a client for a single endpoint. uuid may be empty.
func NewClient(endpoint string, uuid string) *Client {
	if endpoint == "" {
		endpoint = MainnetBlockEngine
	}
	return &Client{
		endpoints:  []string{endpoint},
		uuid:       uuid,
		maxRetries: 3,
		retryDelay: 200 * time.Millisecond,
		log:        zerolog.New(io.Discard),
	}
}

// NewClientWithEndpoints rotates over endpoints round-robin and fails over
// on rate limiting.
//
// Example:
//
//	client := jito.NewClientWithEndpoints(jito.MainnetBlockEngines, "")
func NewClientWithEndpoints(endpoints []string, uuid string) *Client {
	if len(endpoints) == 0 {
		endpoints = MainnetBlockEngines
	}
	return &Client{
		endpoints:  endpoints,
		uuid:       uuid,
		maxRetries: len(endpoints) + 2,
		retryDelay: 100 * time.Millisecond,
		log:        zerolog.New(io.Discard),
	}
}

// WithRetries configures the number of retries and delay between retries.
func (c *Client) WithRetries(maxRetries int, retryDelay time.Duration) *Client {
	c.maxRetries = maxRetries
	c.retryDelay = retryDelay
	return c
}

// WithLogger sets the logger used for retry diagnostics.
func (c *Client) WithLogger(log zerolog.Logger) *Client {
	c.log = log
	return c
}

func (c *Client) nextEndpoint() string {
	idx := atomic.AddUint32(&c.currentIndex, 1)
	return c.endpoints[int(idx)%len(c.endpoints)]
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "congested") ||
		strings.Contains(errStr, "429")
}

// withRetry runs fn against rotating endpoints. Only rate-limit errors are
// retried; anything else is returned at once.
func withRetry[T any](ctx context.Context, c *Client, op string, fn func(*jitorpc.JitoJsonRpcClient) (T, error)) (T, error) {
	var zero T
	attempts := c.maxRetries
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		endpoint := c.nextEndpoint()
		out, err := fn(jitorpc.NewJitoJsonRpcClient(endpoint, c.uuid))
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !isRateLimitError(err) {
			return zero, fmt.Errorf("%s: %w", op, err)
		}
		c.log.Debug().
			Str("op", op).
			Str("endpoint", endpoint).
			Int("attempt", i+1).
			Dur("backoff", c.retryDelay).
			Err(err).
			Msg("jito retry")
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}
	return zero, fmt.Errorf("%s failed after %d retries: %w", op, attempts, lastErr)
}

// GetTipAccounts fetches the current tip accounts from the block engine.
func (c *Client) GetTipAccounts(ctx context.Context) ([]solana.PublicKey, error) {
	raw, err := withRetry(ctx, c, "get tip accounts", func(rc *jitorpc.JitoJsonRpcClient) ([]byte, error) {
		return rc.GetTipAccounts()
	})
	if err != nil {
		return nil, err
	}
	var accounts []string
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("unmarshal tip accounts: %w", err)
	}
	result := make([]solana.PublicKey, 0, len(accounts))
	for _, acc := range accounts {
		pk, err := solana.PublicKeyFromBase58(acc)
		if err != nil {
			continue
		}
		result = append(result, pk)
	}
	return result, nil
}

// SendResult contains the result of sending a transaction via Jito.
type SendResult struct {
	Signature solana.Signature
	BundleID  string
}

// SendTransaction sends a fully signed transaction as a one-transaction bundle.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	result, err := c.SendTransactionWithBundleID(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	return result.Signature, nil
}

// SendTransactionWithBundleID returns the bundle ID alongside the signature
// for use with WaitForBundleConfirmation.
func (c *Client) SendTransactionWithBundleID(ctx context.Context, tx *solana.Transaction) (SendResult, error) {
	bundleID, err := c.SendBundle(ctx, []*solana.Transaction{tx})
	if err != nil {
		return SendResult{}, err
	}
	var sig solana.Signature
	if len(tx.Signatures) > 0 {
		sig = tx.Signatures[0]
	}
	return SendResult{Signature: sig, BundleID: bundleID}, nil
}

// SendBundle sends signed transactions as an atomic bundle and returns its ID.
func (c *Client) SendBundle(ctx context.Context, txs []*solana.Transaction) (string, error) {
	if len(txs) == 0 {
		return "", fmt.Errorf("bundle requires at least one transaction")
	}
	encoded, err := EncodeBundle(txs)
	if err != nil {
		return "", err
	}
	raw, err := withRetry(ctx, c, "jito send bundle", func(rc *jitorpc.JitoJsonRpcClient) ([]byte, error) {
		return rc.SendBundle([][]string{encoded})
	})
	if err != nil {
		return "", err
	}
	var bundleID string
	if err := json.Unmarshal(raw, &bundleID); err != nil {
		return "", fmt.Errorf("unmarshal bundle response: %w", err)
	}
	return bundleID, nil
}

// EncodeBundle serializes transactions to the base64 form the block engine expects.
func EncodeBundle(txs []*solana.Transaction) ([]string, error) {
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		txBytes, err := tx.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("marshal transaction: %w", err)
		}
		out = append(out, base64.StdEncoding.EncodeToString(txBytes))
	}
	return out, nil
}

// WaitForBundleConfirmation polls bundle status until it lands or fails.
func (c *Client) WaitForBundleConfirmation(ctx context.Context, bundleID string) error {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			statuses, err := c.GetBundleStatuses(ctx, []string{bundleID})
			if err != nil {
				continue
			}
			if statuses == nil || len(statuses.Value) == 0 {
				continue
			}
			status := statuses.Value[0]
			switch status.ConfirmationStatus {
			case "confirmed", "finalized":
				return nil
			}
			if status.Err.Ok == nil {
				return fmt.Errorf("bundle failed: %v", status.Err)
			}
		}
	}
}

// GetBundleStatuses returns the statuses of submitted bundles.
func (c *Client) GetBundleStatuses(ctx context.Context, bundleIDs []string) (*jitorpc.BundleStatusResponse, error) {
	return withRetry(ctx, c, "get bundle statuses", func(rc *jitorpc.JitoJsonRpcClient) (*jitorpc.BundleStatusResponse, error) {
		return rc.GetBundleStatuses(bundleIDs)
	})
}
