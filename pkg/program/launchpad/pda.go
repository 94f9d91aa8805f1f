//go:generate go run ../../../internal/gen -idl ../../../idl/launchpad.json -out . -pkg launchpad

// Package launchpad holds the bindings for the launchpad escrow program.
// Everything except this file is generated from idl/launchpad.json.
package launchpad

import (
	"github.com/gagliardetto/solana-go"
)

// Launch.Status values.
const (
	StatusOpen      uint8 = 0
	StatusFinalized uint8 = 1
	StatusCancelled uint8 = 2
)

var (
	seedLaunch       = []byte("launch")
	seedEscrow       = []byte("escrow")
	seedContribution = []byte("contribution")
)

// DeriveLaunchPDA returns the launch account for mint.
func DeriveLaunchPDA(programID, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{seedLaunch, mint.Bytes()}, programID)
}

// DeriveEscrowPDA returns the lamport escrow owned by launch.
func DeriveEscrowPDA(programID, launch solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{seedEscrow, launch.Bytes()}, programID)
}

// DeriveContributionPDA returns the per-contributor receipt account.
func DeriveContributionPDA(programID, launch, contributor solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{seedContribution, launch.Bytes(), contributor.Bytes()}, programID)
}

// IsOpen reports whether the launch still accepts contributions and withdrawals.
func (a *Launch) IsOpen() bool {
	return a.Status == StatusOpen
}

// IsFinalized reports whether the escrow has been spent on the curve.
func (a *Launch) IsFinalized() bool {
	return a.Status == StatusFinalized
}
