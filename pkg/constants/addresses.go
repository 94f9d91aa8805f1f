package constants

import "github.com/gagliardetto/solana-go"

// Well-known program IDs
var (
	// SPL Programs
	SystemProgramID          = solana.SystemProgramID
	TokenProgramID           = solana.TokenProgramID
	AssociatedTokenProgramID = solana.SPLAssociatedTokenAccountProgramID
	ComputeBudgetProgramID   = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")
	SysvarRentProgramID      = solana.SysVarRentPubkey
	MetadataProgramID        = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

	// Launchpad escrow program. Placeholder for the default deployment;
	// override with config program_id for other clusters.
	LaunchpadProgramID = solana.MustPublicKeyFromBase58("6anbDQNCcVh2f6okexjaX1VGj6tEnizJ1kV5UTBS8Zhi")

	// Pump.fun Program
	PumpProgramID    = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	PumpFeeProgramID = solana.MustPublicKeyFromBase58("pfeeUxB6jkeY1Hxd7CsFCAjcbHA9rWtchMGdZ6VojVZ")
)

// Launchpad PDA seeds
const (
	SeedLaunch       = "launch"
	SeedEscrow       = "escrow"
	SeedContribution = "contribution"
)

// Pump PDA seeds
const (
	SeedGlobal                  = "global"
	SeedBondingCurve            = "bonding-curve"
	SeedCreatorVault            = "creator-vault"
	SeedMintAuthority           = "mint-authority"
	SeedEventAuthority          = "__event_authority"
	SeedGlobalVolumeAccumulator = "global_volume_accumulator"
	SeedUserVolumeAccumulator   = "user_volume_accumulator"
	SeedFeeConfig               = "fee_config"
	SeedMetadata                = "metadata"
)
