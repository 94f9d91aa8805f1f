package pump

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var GlobalDiscriminator = []byte{167, 232, 232, 177, 200, 108, 114, 127}

// Global is the program-wide configuration. Newer program versions append
// fields after FeeRecipients; they are not decoded.
type Global struct {
	Initialized                 bool                `bin:"initialized"`
	Authority                   solana.PublicKey    `bin:"authority"`
	FeeRecipient                solana.PublicKey    `bin:"fee_recipient"`
	InitialVirtualTokenReserves uint64              `bin:"initial_virtual_token_reserves"`
	InitialVirtualSolReserves   uint64              `bin:"initial_virtual_sol_reserves"`
	InitialRealTokenReserves    uint64              `bin:"initial_real_token_reserves"`
	TokenTotalSupply            uint64              `bin:"token_total_supply"`
	FeeBasisPoints              uint64              `bin:"fee_basis_points"`
	WithdrawAuthority           solana.PublicKey    `bin:"withdraw_authority"`
	EnableMigrate               bool                `bin:"enable_migrate"`
	PoolMigrationFee            uint64              `bin:"pool_migration_fee"`
	CreatorFeeBasisPoints       uint64              `bin:"creator_fee_basis_points"`
	FeeRecipients               [7]solana.PublicKey `bin:"fee_recipients"`
}

func (a *Global) Unmarshal(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("account Global: data too short")
	}
	if !bytes.Equal(data[:8], GlobalDiscriminator) {
		return fmt.Errorf("account Global: discriminator mismatch")
	}
	return bin.NewBorshDecoder(data[8:]).Decode(a)
}

// AllFeeRecipients returns the primary fee recipient followed by the
// non-zero rotation entries.
func (a *Global) AllFeeRecipients() []solana.PublicKey {
	out := make([]solana.PublicKey, 0, 1+len(a.FeeRecipients))
	if !a.FeeRecipient.IsZero() {
		out = append(out, a.FeeRecipient)
	}
	for _, r := range a.FeeRecipients {
		if !r.IsZero() {
			out = append(out, r)
		}
	}
	return out
}

var BondingCurveDiscriminator = []byte{23, 183, 248, 55, 96, 216, 172, 96}

type BondingCurve struct {
	VirtualTokenReserves uint64           `bin:"virtual_token_reserves"`
	VirtualSolReserves   uint64           `bin:"virtual_sol_reserves"`
	RealTokenReserves    uint64           `bin:"real_token_reserves"`
	RealSolReserves      uint64           `bin:"real_sol_reserves"`
	TokenTotalSupply     uint64           `bin:"token_total_supply"`
	Complete             bool             `bin:"complete"`
	Creator              solana.PublicKey `bin:"creator"`
}

func (a *BondingCurve) Unmarshal(data []byte) error {
	if len(data) < 8 {
		return fmt.Errorf("account BondingCurve: data too short")
	}
	if !bytes.Equal(data[:8], BondingCurveDiscriminator) {
		return fmt.Errorf("account BondingCurve: discriminator mismatch")
	}
	return bin.NewBorshDecoder(data[8:]).Decode(a)
}
