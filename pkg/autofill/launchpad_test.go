package autofill

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/launchpad-go-sdk/pkg/config"
	"github.com/ninja0404/launchpad-go-sdk/pkg/constants"
	"github.com/ninja0404/launchpad-go-sdk/pkg/graduation"
	"github.com/ninja0404/launchpad-go-sdk/pkg/program/launchpad"
	"github.com/ninja0404/launchpad-go-sdk/pkg/program/pump"
	sdkrpc "github.com/ninja0404/launchpad-go-sdk/pkg/rpc"
	"github.com/ninja0404/launchpad-go-sdk/pkg/types"
)

type fakeReader struct {
	accounts map[solana.PublicKey][]byte
	balances map[solana.PublicKey]uint64
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		accounts: make(map[solana.PublicKey][]byte),
		balances: make(map[solana.PublicKey]uint64),
	}
}

func (f *fakeReader) GetBalance(_ context.Context, pk solana.PublicKey) (uint64, error) {
	return f.balances[pk], nil
}

func (f *fakeReader) GetAccountData(_ context.Context, pk solana.PublicKey) ([]byte, error) {
	data, ok := f.accounts[pk]
	if !ok {
		return nil, sdkrpc.ErrAccountNotFound
	}
	return data, nil
}

func (f *fakeReader) GetMultipleAccountsData(_ context.Context, pks ...solana.PublicKey) ([][]byte, error) {
	out := make([][]byte, len(pks))
	for i, pk := range pks {
		out[i] = f.accounts[pk]
	}
	return out, nil
}

func encode(t *testing.T, disc []byte, v interface{}) []byte {
	t.Helper()
	buf := bytes.NewBuffer(append([]byte(nil), disc...))
	require.NoError(t, bin.NewBorshEncoder(buf).Encode(v))
	return buf.Bytes()
}

type fixture struct {
	cfg         config.Config
	reader      *fakeReader
	creator     solana.PublicKey
	contributor solana.PublicKey
	mint        solana.PublicKey
	launch      solana.PublicKey
	escrow      solana.PublicKey
	contrib     solana.PublicKey
	feeWallet   solana.PublicKey
	now         time.Time
	state       launchpad.Launch
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cfg:         config.Default(),
		reader:      newFakeReader(),
		creator:     solana.NewWallet().PublicKey(),
		contributor: solana.NewWallet().PublicKey(),
		mint:        solana.NewWallet().PublicKey(),
		feeWallet:   solana.NewWallet().PublicKey(),
		now:         time.Unix(1_700_000_000, 0),
	}
	var err error
	f.launch, _, err = launchpad.DeriveLaunchPDA(f.cfg.ProgramID, f.mint)
	require.NoError(t, err)
	f.escrow, _, err = launchpad.DeriveEscrowPDA(f.cfg.ProgramID, f.launch)
	require.NoError(t, err)
	f.contrib, _, err = launchpad.DeriveContributionPDA(f.cfg.ProgramID, f.launch, f.contributor)
	require.NoError(t, err)

	f.state = launchpad.Launch{
		Creator:          f.creator,
		Mint:             f.mint,
		Escrow:           f.escrow,
		Name:             "Launch Token",
		Symbol:           "LPAD",
		Uri:              "ipfs://meta",
		TargetLamports:   85_000_000_000,
		Deadline:         f.now.Add(time.Hour).Unix(),
		TotalContributed: 4_000_000_000,
		ContributorCount: 2,
		Status:           launchpad.StatusOpen,
	}
	f.putLaunch(t)
	f.putContribution(t, launchpad.Contribution{Launch: f.launch, Contributor: f.contributor, Amount: 1_000_000_000})

	globalKey, _, err := pump.DeriveGlobalPDA()
	require.NoError(t, err)
	f.reader.accounts[globalKey] = encode(t, pump.GlobalDiscriminator, &pump.Global{
		Initialized:                 true,
		InitialVirtualTokenReserves: 1_073_000_000_000_000,
		InitialVirtualSolReserves:   30_000_000_000,
		InitialRealTokenReserves:    793_100_000_000_000,
		FeeRecipients:               [7]solana.PublicKey{f.feeWallet},
	})
	return f
}

func (f *fixture) putLaunch(t *testing.T) {
	f.reader.accounts[f.launch] = encode(t, launchpad.LaunchDiscriminator, &f.state)
}

func (f *fixture) putContribution(t *testing.T, c launchpad.Contribution) {
	f.reader.accounts[f.contrib] = encode(t, launchpad.ContributionDiscriminator, &c)
}

func (f *fixture) clock() Option {
	return WithClock(func() time.Time { return f.now })
}

func TestCreateLaunch(t *testing.T) {
	f := newFixture(t)
	deadline := f.now.Add(72 * time.Hour)

	accts, args, ix, mintKey, err := CreateLaunch(context.Background(), f.reader, f.cfg, f.creator,
		"New Token", "NEW", "ipfs://new", 85_000_000_000, deadline, f.clock())
	require.NoError(t, err)
	require.NotNil(t, mintKey)

	mint := mintKey.PublicKey()
	wantLaunch, _, _ := launchpad.DeriveLaunchPDA(f.cfg.ProgramID, mint)
	wantEscrow, _, _ := launchpad.DeriveEscrowPDA(f.cfg.ProgramID, wantLaunch)
	assert.Equal(t, mint, accts.Mint)
	assert.Equal(t, wantLaunch, accts.Launch)
	assert.Equal(t, wantEscrow, accts.Escrow)
	assert.Equal(t, deadline.Unix(), args.Deadline)
	assert.Equal(t, f.cfg.ProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, launchpad.InitializeLaunchDiscriminator, data[:8])
}

func TestCreateLaunchRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, _, _, err := CreateLaunch(ctx, f.reader, f.cfg, f.creator, "", "NEW", "ipfs://x", 1, f.now.Add(time.Hour), f.clock())
	var verr types.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, _, _, _, err = CreateLaunch(ctx, f.reader, f.cfg, f.creator, "Token", "NEW", "ipfs://x", 1, f.now.Add(-time.Hour), f.clock())
	assert.Error(t, err)

	// A supplied mint that already has a launch.
	existing := solana.NewWallet().PrivateKey
	launchKey, _, _ := launchpad.DeriveLaunchPDA(f.cfg.ProgramID, existing.PublicKey())
	f.reader.accounts[launchKey] = []byte{1}
	_, _, _, _, err = CreateLaunch(ctx, f.reader, f.cfg, f.creator, "Token", "NEW", "ipfs://x", 1, f.now.Add(time.Hour), f.clock(), WithMintKey(existing))
	assert.ErrorContains(t, err, "already exists")
}

func TestContribute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	accts, args, ixs, err := Contribute(ctx, f.reader, f.cfg, f.contributor, f.launch, 500_000_000, f.clock())
	require.NoError(t, err)
	require.Len(t, ixs, 1)
	assert.Equal(t, f.escrow, accts.Escrow)
	assert.Equal(t, f.contrib, accts.Contribution)
	assert.Equal(t, uint64(500_000_000), args.Amount)

	_, _, _, err = Contribute(ctx, f.reader, f.cfg, f.contributor, f.launch, 0, f.clock())
	assert.Error(t, err)

	late := WithClock(func() time.Time { return f.now.Add(2 * time.Hour) })
	_, _, _, err = Contribute(ctx, f.reader, f.cfg, f.contributor, f.launch, 1, late)
	assert.ErrorIs(t, err, types.ErrLaunchNotOpen)

	_, _, _, err = Contribute(ctx, f.reader, f.cfg, f.contributor, solana.NewWallet().PublicKey(), 1, f.clock())
	assert.ErrorIs(t, err, types.ErrLaunchNotFound)
}

func TestContributeWithJitoTip(t *testing.T) {
	f := newFixture(t)
	_, _, ixs, err := Contribute(context.Background(), f.reader, f.cfg, f.contributor, f.launch, 1, f.clock(), WithJitoTip(10_000))
	require.NoError(t, err)
	require.Len(t, ixs, 2)
	assert.Equal(t, solana.SystemProgramID, ixs[1].ProgramID())
}

func TestWithdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	accts, _, ixs, err := Withdraw(ctx, f.reader, f.cfg, f.contributor, f.launch, 1_000_000_000)
	require.NoError(t, err)
	require.Len(t, ixs, 1)
	assert.Equal(t, f.contrib, accts.Contribution)

	_, _, _, err = Withdraw(ctx, f.reader, f.cfg, f.contributor, f.launch, 1_000_000_001)
	assert.ErrorIs(t, err, types.ErrWithdrawTooLarge)

	stranger := solana.NewWallet().PublicKey()
	_, _, _, err = Withdraw(ctx, f.reader, f.cfg, stranger, f.launch, 1)
	assert.ErrorIs(t, err, types.ErrContributionNotFound)
}

func TestFinalizeClampsLargeEscrow(t *testing.T) {
	f := newFixture(t)
	f.reader.balances[f.escrow] = 100_000_000_000
	authority := solana.NewWallet().PublicKey()

	var preview bytes.Buffer
	accts, args, ixs, res, err := Finalize(context.Background(), f.reader, f.cfg, authority, f.launch, WithPreview(&preview))
	require.NoError(t, err)

	assert.True(t, res.Clamped)
	assert.True(t, res.GraduationReachable)
	assert.Equal(t, uint64(713_790_000_000_000), res.MinTokensOut)
	assert.Equal(t, res.MinTokensOut, args.MinTokensOut)

	// Compute budget limit + price, then finalize.
	require.Len(t, ixs, 3)
	assert.Equal(t, constants.ComputeBudgetProgramID, ixs[0].ProgramID())
	assert.Equal(t, f.cfg.ProgramID, ixs[2].ProgramID())

	assert.Equal(t, f.feeWallet, accts.PumpFeeRecipient)
	assert.Equal(t, authority, accts.Authority)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(preview.Bytes(), &decoded))
	assert.Contains(t, decoded, "estimate")
}

func TestFinalizeGoldenEstimates(t *testing.T) {
	cases := []struct {
		balance uint64
		minOut  uint64
	}{
		{10_000_000_000, 241_162_355_103_725},
		{1_000_000_000, 30_714_280_873_312},
	}
	for _, tc := range cases {
		f := newFixture(t)
		f.reader.balances[f.escrow] = tc.balance
		_, args, _, res, err := Finalize(context.Background(), f.reader, f.cfg, f.creator, f.launch)
		require.NoError(t, err)
		assert.Equal(t, tc.minOut, args.MinTokensOut)
		assert.False(t, res.GraduationReachable)
	}
}

func TestFinalizeInsufficientEscrow(t *testing.T) {
	f := newFixture(t)
	f.reader.balances[f.escrow] = f.cfg.FixedCosts
	ctx := context.Background()

	_, _, _, _, err := Finalize(ctx, f.reader, f.cfg, f.creator, f.launch)
	assert.ErrorIs(t, err, graduation.ErrInsufficientEscrow)

	_, args, ixs, _, err := Finalize(ctx, f.reader, f.cfg, f.creator, f.launch, WithAllowUnprotected())
	require.NoError(t, err)
	assert.Zero(t, args.MinTokensOut)
	assert.NotEmpty(t, ixs)
}

func TestFinalizeDegenerateCurve(t *testing.T) {
	f := newFixture(t)
	f.reader.balances[f.escrow] = 10_000_000_000
	cfg := f.cfg
	cfg.Curve.VirtualTokenReserves = 0
	ctx := context.Background()

	_, _, _, res, err := Finalize(ctx, f.reader, cfg, f.creator, f.launch)
	assert.ErrorIs(t, err, graduation.ErrDegenerateEstimate)
	assert.Zero(t, res)

	_, args, ixs, _, err := Finalize(ctx, f.reader, cfg, f.creator, f.launch, WithAllowUnprotected())
	require.NoError(t, err)
	assert.Zero(t, args.MinTokensOut)
	assert.NotEmpty(t, ixs)
}

func TestFinalizeOptions(t *testing.T) {
	f := newFixture(t)
	f.reader.balances[f.escrow] = 10_000_000_000
	pinned := solana.NewWallet().PublicKey()

	_, args, ixs, res, err := Finalize(context.Background(), f.reader, f.cfg, f.creator, f.launch,
		WithMinTokensOut(42),
		WithFeeRecipient(pinned),
		WithLiveCurve(),
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), args.MinTokensOut)
	assert.Equal(t, uint64(241_162_355_103_725), res.MinTokensOut)
	assert.Len(t, ixs, 3)
}

func TestFinalizeRejectsFinalizedLaunch(t *testing.T) {
	f := newFixture(t)
	f.state.Status = launchpad.StatusFinalized
	f.putLaunch(t)
	f.reader.balances[f.escrow] = 10_000_000_000

	_, _, _, _, err := Finalize(context.Background(), f.reader, f.cfg, f.creator, f.launch)
	assert.ErrorIs(t, err, types.ErrLaunchNotOpen)
}

func TestFinalizeAccountsFor(t *testing.T) {
	f := newFixture(t)
	authority := solana.NewWallet().PublicKey()

	accts, err := FinalizeAccountsFor(f.cfg.ProgramID, f.state, authority, f.feeWallet)
	require.NoError(t, err)

	bc, _, _ := pump.DeriveBondingCurvePDA(f.mint)
	abc, _, _ := pump.DeriveAssociatedBondingCurve(bc, f.mint)
	vault, _, _ := pump.DeriveCreatorVaultPDA(f.creator)
	uva, _, _ := pump.DeriveUserVolumeAccumulatorPDA(f.escrow)
	escrowATA, _, _ := solana.FindAssociatedTokenAddress(f.escrow, f.mint)

	assert.Equal(t, f.launch, accts.Launch)
	assert.Equal(t, f.escrow, accts.Escrow)
	assert.Equal(t, escrowATA, accts.EscrowTokenAccount)
	assert.Equal(t, bc, accts.PumpBondingCurve)
	assert.Equal(t, abc, accts.PumpAssociatedBondingCurve)
	assert.Equal(t, vault, accts.PumpCreatorVault)
	assert.Equal(t, uva, accts.PumpUserVolumeAccumulator)
	assert.Equal(t, "4wTV1YmiEkRvAtNtsSGPtUrqRYQMe5SKy2uB4Jjaxnjf", accts.PumpGlobal.String())
	assert.Equal(t, "8Wf5TiAheLUqBrKXeYg2JtAFFMWtKdG2BSFgqUcPVwTt", accts.PumpFeeConfig.String())

	metas := accts.ToAccountMetas()
	assert.True(t, metas[3].IsSigner, "mint signs finalize")

	_, err = FinalizeAccountsFor(f.cfg.ProgramID, f.state, authority, solana.PublicKey{})
	assert.Error(t, err)
}

func TestClaim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, _, err := Claim(ctx, f.reader, f.cfg, f.contributor, f.launch)
	assert.ErrorIs(t, err, types.ErrLaunchNotFinalized)

	f.state.Status = launchpad.StatusFinalized
	f.state.TokensBought = 800_000_000_000_000
	f.putLaunch(t)

	accts, _, ixs, err := Claim(ctx, f.reader, f.cfg, f.contributor, f.launch)
	require.NoError(t, err)
	require.Len(t, ixs, 2, "creates the contributor ATA first")
	assert.Equal(t, constants.AssociatedTokenProgramID, ixs[0].ProgramID())

	wantATA, _, _ := solana.FindAssociatedTokenAddress(f.contributor, f.mint)
	assert.Equal(t, wantATA, accts.ContributorTokenAccount)

	_, _, ixs, err = Claim(ctx, f.reader, f.cfg, f.contributor, f.launch, WithKnownATAs(wantATA))
	require.NoError(t, err)
	assert.Len(t, ixs, 1)

	f.putContribution(t, launchpad.Contribution{Launch: f.launch, Contributor: f.contributor, Amount: 1, Claimed: true})
	_, _, _, err = Claim(ctx, f.reader, f.cfg, f.contributor, f.launch)
	assert.ErrorIs(t, err, types.ErrAlreadyClaimed)
}

func TestClaimableTokens(t *testing.T) {
	state := launchpad.Launch{TotalContributed: 4_000_000_000, TokensBought: 800_000_000_000_000}
	c := launchpad.Contribution{Amount: 1_000_000_000}
	assert.Equal(t, uint64(200_000_000_000_000), ClaimableTokens(state, c))

	c.Claimed = true
	assert.Zero(t, ClaimableTokens(state, c))
	assert.Zero(t, ClaimableTokens(launchpad.Launch{}, launchpad.Contribution{Amount: 1}))

	// Stale state where the contribution exceeds the recorded total.
	stale := launchpad.Launch{TotalContributed: 1_000, TokensBought: 500}
	assert.Equal(t, uint64(500), ClaimableTokens(stale, launchpad.Contribution{Amount: 3_000}))
	huge := launchpad.Launch{TotalContributed: 2, TokensBought: math.MaxUint64}
	assert.Equal(t, uint64(math.MaxUint64), ClaimableTokens(huge, launchpad.Contribution{Amount: 3}))
}

func TestApplyOverrides(t *testing.T) {
	pk := solana.NewWallet().PublicKey()
	var accts launchpad.ClaimAccounts
	applyOverrides(&accts, map[string]solana.PublicKey{"contributor_token_account": pk, "launch": pk})
	assert.Equal(t, pk, accts.ContributorTokenAccount)
	assert.Equal(t, pk, accts.Launch)

	m, err := MergeOverridesFromJSON(nil, []byte(`{"escrow":"`+pk.String()+`"}`))
	require.NoError(t, err)
	assert.Equal(t, pk, m["escrow"])
}
