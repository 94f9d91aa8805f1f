package config

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/launchpad-go-sdk/pkg/constants"
	"github.com/ninja0404/launchpad-go-sdk/pkg/graduation"
)

// SocialConfig points at the companion social/auth API.
type SocialConfig struct {
	BaseURL string
	Timeout time.Duration
	RPS     float64
	Retries uint
}

// IPFSConfig configures the pinning service.
type IPFSConfig struct {
	APIURL     string
	GatewayURL string
	JWT        string
	Timeout    time.Duration
}

// JitoConfig enables Jito block-engine submission when Endpoint is set.
type JitoConfig struct {
	Endpoint    string
	UUID        string
	TipLamports uint64
}

// ComputeConfig sets the compute-budget instructions prepended to heavy transactions.
type ComputeConfig struct {
	UnitLimit uint32
	// UnitPrice is in micro-lamports per compute unit.
	UnitPrice uint64
}

// Config is the full SDK configuration.
type Config struct {
	RPC       RPCConfig
	ProgramID solana.PublicKey
	// Curve is the bonding-curve shape assumed by the finalize estimate.
	Curve graduation.CurveConstants
	// FixedCosts is the lamport amount the program keeps before buying.
	FixedCosts uint64
	Compute    ComputeConfig
	Social     SocialConfig
	IPFS       IPFSConfig
	Jito       JitoConfig
	LogLevel   string
}

// Default returns mainnet defaults with the pump.fun curve.
func Default() Config {
	return Config{
		RPC:        DefaultRPCConfig(),
		ProgramID:  constants.LaunchpadProgramID,
		Curve:      graduation.DefaultCurve(),
		FixedCosts: graduation.DefaultFixedCosts,
		Compute: ComputeConfig{
			UnitLimit: 400_000,
			UnitPrice: 100_000,
		},
		Social: SocialConfig{
			BaseURL: "https://api.launchpad.fun",
			Timeout: 10 * time.Second,
			RPS:     5,
			Retries: 3,
		},
		IPFS: IPFSConfig{
			APIURL:     "https://api.pinata.cloud",
			GatewayURL: "https://gateway.pinata.cloud/ipfs/",
			Timeout:    60 * time.Second,
		},
		LogLevel: "info",
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := c.RPC.Validate(); err != nil {
		return err
	}
	if c.ProgramID.IsZero() {
		return fmt.Errorf("program_id is required")
	}
	if err := c.Curve.Validate(); err != nil {
		return err
	}
	if c.Social.BaseURL != "" {
		if err := checkScheme("social.base_url", c.Social.BaseURL, "http", "https"); err != nil {
			return err
		}
	}
	if c.Social.RPS < 0 {
		return fmt.Errorf("social.rps must not be negative")
	}
	if c.IPFS.APIURL != "" {
		if err := checkScheme("ipfs.api_url", c.IPFS.APIURL, "http", "https"); err != nil {
			return err
		}
	}
	if c.IPFS.GatewayURL != "" {
		if err := checkScheme("ipfs.gateway_url", c.IPFS.GatewayURL, "http", "https"); err != nil {
			return err
		}
	}
	if c.Jito.Endpoint != "" {
		if err := checkScheme("jito.endpoint", c.Jito.Endpoint, "http", "https"); err != nil {
			return err
		}
	}
	return nil
}
