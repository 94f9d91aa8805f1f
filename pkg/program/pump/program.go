// Package pump is the subset of the pump.fun program interface the launchpad
// finalize instruction touches: account layouts for Global and BondingCurve,
// the PDAs passed through to the CPI and the error table.
package pump

import "github.com/gagliardetto/solana-go"

const ProgramID string = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
const FeeProgramID string = "pfeeUxB6jkeY1Hxd7CsFCAjcbHA9rWtchMGdZ6VojVZ"
const ProgramName string = "pump"

var (
	ProgramKey    = solana.MustPublicKeyFromBase58(ProgramID)
	FeeProgramKey = solana.MustPublicKeyFromBase58(FeeProgramID)
)
