package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"

	"github.com/ninja0404/launchpad-go-sdk/pkg/graduation"
)

// EnvPrefix prefixes every environment override, e.g. LAUNCHPAD_RPC_URL.
const EnvPrefix = "LAUNCHPAD"

type fileConfig struct {
	Network    string        `mapstructure:"network"`
	RPCURL     string        `mapstructure:"rpc_url"`
	Commitment string        `mapstructure:"commitment"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Retry      struct {
		Enabled        bool          `mapstructure:"enabled"`
		MaxAttempts    int           `mapstructure:"max_attempts"`
		InitialBackoff time.Duration `mapstructure:"initial_backoff"`
		MaxBackoff     time.Duration `mapstructure:"max_backoff"`
	} `mapstructure:"retry"`
	RateLimit struct {
		RPS   float64 `mapstructure:"rps"`
		Burst int     `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`
	ProgramID  string `mapstructure:"program_id"`
	FixedCosts uint64 `mapstructure:"fixed_costs"`
	Curve      struct {
		VirtualBaseReserves      uint64 `mapstructure:"virtual_base_reserves"`
		VirtualTokenReserves     uint64 `mapstructure:"virtual_token_reserves"`
		InitialRealTokenReserves uint64 `mapstructure:"initial_real_token_reserves"`
		GraduationThreshold      uint64 `mapstructure:"graduation_threshold"`
	} `mapstructure:"curve"`
	Compute struct {
		UnitLimit uint32 `mapstructure:"unit_limit"`
		UnitPrice uint64 `mapstructure:"unit_price"`
	} `mapstructure:"compute"`
	Social struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
		RPS     float64       `mapstructure:"rps"`
		Retries uint          `mapstructure:"retries"`
	} `mapstructure:"social"`
	IPFS struct {
		APIURL     string        `mapstructure:"api_url"`
		GatewayURL string        `mapstructure:"gateway_url"`
		JWT        string        `mapstructure:"jwt"`
		Timeout    time.Duration `mapstructure:"timeout"`
	} `mapstructure:"ipfs"`
	Jito struct {
		Endpoint    string `mapstructure:"endpoint"`
		UUID        string `mapstructure:"uuid"`
		TipLamports uint64 `mapstructure:"tip_lamports"`
	} `mapstructure:"jito"`
	LogLevel string `mapstructure:"log_level"`
}

// Load reads an optional config file (YAML, JSON or TOML by extension),
// applies LAUNCHPAD_* environment overrides on top of Default and validates
// the result. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg, err := fc.toConfig()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	defaults := map[string]interface{}{
		"network":                           string(d.RPC.Network),
		"rpc_url":                           d.RPC.RPCURL,
		"commitment":                        d.RPC.Commitment,
		"timeout":                           d.RPC.Timeout,
		"retry.enabled":                     d.RPC.Retry.Enabled,
		"retry.max_attempts":                d.RPC.Retry.MaxAttempts,
		"retry.initial_backoff":             d.RPC.Retry.InitialBackoff,
		"retry.max_backoff":                 d.RPC.Retry.MaxBackoff,
		"rate_limit.rps":                    d.RPC.RateLimit.RPS,
		"rate_limit.burst":                  d.RPC.RateLimit.Burst,
		"program_id":                        d.ProgramID.String(),
		"fixed_costs":                       d.FixedCosts,
		"curve.virtual_base_reserves":       d.Curve.VirtualBaseReserves,
		"curve.virtual_token_reserves":      d.Curve.VirtualTokenReserves,
		"curve.initial_real_token_reserves": d.Curve.InitialRealTokenReserves,
		"curve.graduation_threshold":        d.Curve.GraduationThreshold,
		"compute.unit_limit":                d.Compute.UnitLimit,
		"compute.unit_price":                d.Compute.UnitPrice,
		"social.base_url":                   d.Social.BaseURL,
		"social.timeout":                    d.Social.Timeout,
		"social.rps":                        d.Social.RPS,
		"social.retries":                    d.Social.Retries,
		"ipfs.api_url":                      d.IPFS.APIURL,
		"ipfs.gateway_url":                  d.IPFS.GatewayURL,
		"ipfs.jwt":                          d.IPFS.JWT,
		"ipfs.timeout":                      d.IPFS.Timeout,
		"jito.endpoint":                     d.Jito.Endpoint,
		"jito.uuid":                         d.Jito.UUID,
		"jito.tip_lamports":                 d.Jito.TipLamports,
		"log_level":                         d.LogLevel,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

func (fc fileConfig) toConfig() (Config, error) {
	cfg := Default()

	cfg.RPC.Network = Network(fc.Network)
	cfg.RPC.RPCURL = fc.RPCURL
	// A network switch without an explicit URL follows the network.
	if fc.RPCURL == DefaultRPCURL(NetworkMainnet) && cfg.RPC.Network != NetworkMainnet {
		cfg.RPC.RPCURL = ""
	}
	cfg.RPC.Commitment = fc.Commitment
	cfg.RPC.Timeout = fc.Timeout
	cfg.RPC.Retry.Enabled = fc.Retry.Enabled
	cfg.RPC.Retry.MaxAttempts = fc.Retry.MaxAttempts
	cfg.RPC.Retry.InitialBackoff = fc.Retry.InitialBackoff
	cfg.RPC.Retry.MaxBackoff = fc.Retry.MaxBackoff
	cfg.RPC.RateLimit.RPS = fc.RateLimit.RPS
	cfg.RPC.RateLimit.Burst = fc.RateLimit.Burst

	pid, err := solana.PublicKeyFromBase58(strings.TrimSpace(fc.ProgramID))
	if err != nil {
		return Config{}, fmt.Errorf("program_id: %w", err)
	}
	cfg.ProgramID = pid
	cfg.FixedCosts = fc.FixedCosts
	cfg.Curve = graduation.CurveConstants{
		VirtualBaseReserves:      fc.Curve.VirtualBaseReserves,
		VirtualTokenReserves:     fc.Curve.VirtualTokenReserves,
		InitialRealTokenReserves: fc.Curve.InitialRealTokenReserves,
		GraduationThreshold:      fc.Curve.GraduationThreshold,
	}
	cfg.Compute = ComputeConfig{UnitLimit: fc.Compute.UnitLimit, UnitPrice: fc.Compute.UnitPrice}
	cfg.Social = SocialConfig{
		BaseURL: fc.Social.BaseURL,
		Timeout: fc.Social.Timeout,
		RPS:     fc.Social.RPS,
		Retries: fc.Social.Retries,
	}
	cfg.IPFS = IPFSConfig{
		APIURL:     fc.IPFS.APIURL,
		GatewayURL: fc.IPFS.GatewayURL,
		JWT:        fc.IPFS.JWT,
		Timeout:    fc.IPFS.Timeout,
	}
	cfg.Jito = JitoConfig{
		Endpoint:    fc.Jito.Endpoint,
		UUID:        fc.Jito.UUID,
		TipLamports: fc.Jito.TipLamports,
	}
	cfg.LogLevel = fc.LogLevel
	return cfg, nil
}
