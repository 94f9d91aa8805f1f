package pump

import (
	"github.com/gagliardetto/solana-go"

	"github.com/ninja0404/launchpad-go-sdk/pkg/constants"
)

func DeriveGlobalPDA() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(constants.SeedGlobal)}, ProgramKey)
}

func DeriveBondingCurvePDA(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(constants.SeedBondingCurve), mint.Bytes()}, ProgramKey)
}

// DeriveAssociatedBondingCurve returns the bonding curve's token account for mint.
func DeriveAssociatedBondingCurve(bondingCurve, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		bondingCurve.Bytes(),
		constants.TokenProgramID.Bytes(),
		mint.Bytes(),
	}, constants.AssociatedTokenProgramID)
}

func DeriveMintAuthorityPDA() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(constants.SeedMintAuthority)}, ProgramKey)
}

// DeriveMetadataPDA returns the Metaplex metadata account for mint.
func DeriveMetadataPDA(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		[]byte(constants.SeedMetadata),
		constants.MetadataProgramID.Bytes(),
		mint.Bytes(),
	}, constants.MetadataProgramID)
}

func DeriveCreatorVaultPDA(creator solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(constants.SeedCreatorVault), creator.Bytes()}, ProgramKey)
}

func DeriveEventAuthorityPDA() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(constants.SeedEventAuthority)}, ProgramKey)
}

func DeriveGlobalVolumeAccumulatorPDA() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(constants.SeedGlobalVolumeAccumulator)}, ProgramKey)
}

func DeriveUserVolumeAccumulatorPDA(user solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(constants.SeedUserVolumeAccumulator), user.Bytes()}, ProgramKey)
}

// DeriveFeeConfigPDA lives on the fee program, seeded with the pump program ID.
func DeriveFeeConfigPDA() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(constants.SeedFeeConfig), ProgramKey.Bytes()}, FeeProgramKey)
}
