package config

import (
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Network defines the target Solana cluster.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
	NetworkDevnet  Network = "devnet"
	NetworkCustom  Network = "custom"
)

// DefaultRPCURL returns the standard RPC endpoint for a known network.
func DefaultRPCURL(network Network) string {
	switch network {
	case NetworkMainnet:
		return "https://api.mainnet-beta.solana.com"
	case NetworkTestnet:
		return "https://api.testnet.solana.com"
	case NetworkDevnet:
		return "https://api.devnet.solana.com"
	default:
		return ""
	}
}

// RetryConfig controls RPC retry behavior.
type RetryConfig struct {
	Enabled        bool
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Jitter         bool
}

// RateLimitConfig throttles outbound RPC calls.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// RPCConfig aggregates runtime settings for RPC usage.
type RPCConfig struct {
	Network    Network
	RPCURL     string
	Commitment string
	Timeout    time.Duration
	Retry      RetryConfig
	RateLimit  RateLimitConfig
	Logger     zerolog.Logger
}

// DefaultRPCConfig yields production-safe defaults (mainnet, finalized commitment).
func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		Network:    NetworkMainnet,
		RPCURL:     DefaultRPCURL(NetworkMainnet),
		Commitment: "finalized",
		Timeout:    20 * time.Second,
		Retry: RetryConfig{
			Enabled:        true,
			MaxAttempts:    3,
			InitialBackoff: 150 * time.Millisecond,
			MaxBackoff:     2 * time.Second,
			Jitter:         true,
		},
		RateLimit: RateLimitConfig{
			RPS:   8,
			Burst: 16,
		},
		Logger: zerolog.New(io.Discard),
	}
}

// ResolveRPCURL returns RPCURL if set, otherwise falls back to network defaults.
func (c RPCConfig) ResolveRPCURL() string {
	if c.RPCURL != "" {
		return c.RPCURL
	}
	return DefaultRPCURL(c.Network)
}

// Validate checks the endpoint scheme and the numeric limits.
func (c RPCConfig) Validate() error {
	endpoint := c.ResolveRPCURL()
	if endpoint == "" {
		return fmt.Errorf("rpc url is required for network %q", c.Network)
	}
	if err := checkScheme("rpc_url", endpoint, "http", "https"); err != nil {
		return err
	}
	switch c.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("invalid commitment %q", c.Commitment)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry max_attempts must not be negative")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}

func checkScheme(field, raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid url: %w", field, err)
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%s: %q must use one of %v", field, raw, schemes)
}
