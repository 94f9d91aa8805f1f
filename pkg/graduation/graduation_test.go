package graduation

import (
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const solLamports uint64 = 1_000_000_000

func TestEstimateGolden(t *testing.T) {
	curve := DefaultCurve()
	cases := []struct {
		name      string
		balance   uint64
		spendable uint64
		expected  uint64
		minOut    uint64
		unclamped uint64
		clamped   bool
		reachable bool
	}{
		{
			name:      "100 SOL exceeds real reserve",
			balance:   100 * solLamports,
			spendable: 99_985_500_000,
			expected:  793_100_000_000_000,
			minOut:    713_790_000_000_000,
			unclamped: 825_356_993_664_678,
			clamped:   true,
			reachable: true,
		},
		{
			name:      "10 SOL",
			balance:   10 * solLamports,
			spendable: 9_985_500_000,
			expected:  267_958_172_337_473,
			minOut:    241_162_355_103_725,
			unclamped: 267_958_172_337_473,
		},
		{
			name:      "1 SOL",
			balance:   solLamports,
			spendable: 985_500_000,
			expected:  34_126_978_748_125,
			minOut:    30_714_280_873_312,
			unclamped: 34_126_978_748_125,
		},
		{
			name:      "one spendable lamport",
			balance:   DefaultFixedCosts + 1,
			spendable: 1,
			expected:  35_767,
			minOut:    32_190,
			unclamped: 35_767,
		},
		{
			name:      "exactly the graduation threshold",
			balance:   85_000_000_000 + DefaultFixedCosts,
			spendable: 85_000_000_000,
			expected:  793_086_956_521_740,
			minOut:    713_778_260_869_566,
			unclamped: 793_086_956_521_740,
			reachable: true,
		},
		{
			name:      "million SOL",
			balance:   1_000_000 * solLamports,
			spendable: 999_999_985_500_000,
			expected:  793_100_000_000_000,
			minOut:    713_790_000_000_000,
			unclamped: 1_072_967_810_965_205,
			clamped:   true,
			reachable: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Estimate(tc.balance, curve, DefaultFixedCosts)
			require.NoError(t, err)
			assert.Equal(t, tc.spendable, res.SpendableAmount)
			assert.Equal(t, tc.expected, res.TokensExpected)
			assert.Equal(t, tc.minOut, res.MinTokensOut)
			assert.Equal(t, tc.unclamped, res.UnclampedTokens)
			assert.Equal(t, tc.clamped, res.Clamped)
			assert.Equal(t, tc.reachable, res.GraduationReachable)
		})
	}
}

func TestEstimateInsufficientEscrow(t *testing.T) {
	for _, balance := range []uint64{0, 1, DefaultFixedCosts - 1, DefaultFixedCosts} {
		res, err := Estimate(balance, DefaultCurve(), DefaultFixedCosts)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInsufficientEscrow))
		assert.Equal(t, Result{}, res)

		var estErr *EstimateError
		require.True(t, errors.As(err, &estErr))
		assert.Equal(t, balance, estErr.EscrowBalance)
		assert.Equal(t, DefaultFixedCosts, estErr.FixedCosts)
	}
}

func TestEstimateZeroFixedCosts(t *testing.T) {
	res, err := Estimate(1, DefaultCurve(), 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.SpendableAmount)
	assert.Equal(t, uint64(35_767), res.TokensExpected)

	_, err = Estimate(0, DefaultCurve(), 0)
	assert.ErrorIs(t, err, ErrInsufficientEscrow)
}

func TestEstimateDegenerateCurve(t *testing.T) {
	mutations := map[string]func(*CurveConstants){
		"zero virtual token": func(c *CurveConstants) { c.VirtualTokenReserves = 0 },
		"zero real token":    func(c *CurveConstants) { c.InitialRealTokenReserves = 0 },
		"all zero":           func(c *CurveConstants) { *c = CurveConstants{} },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			c := DefaultCurve()
			mutate(&c)
			res, err := Estimate(10*solLamports, c, DefaultFixedCosts)
			assert.ErrorIs(t, err, ErrDegenerateEstimate)
			assert.NotErrorIs(t, err, ErrInvalidCurve)
			assert.Equal(t, Result{}, res)

			var estErr *EstimateError
			require.ErrorAs(t, err, &estErr)
			assert.Equal(t, 10*solLamports-DefaultFixedCosts, estErr.Spendable)
			assert.Equal(t, 10*solLamports, estErr.EscrowBalance)
		})
	}
}

func TestEstimateUnvalidatedCurves(t *testing.T) {
	// Real reserves above the virtual ones never clamp.
	c := DefaultCurve()
	c.InitialRealTokenReserves = c.VirtualTokenReserves + 1
	res, err := Estimate(100*solLamports, c, DefaultFixedCosts)
	require.NoError(t, err)
	assert.False(t, res.Clamped)
	assert.Equal(t, uint64(825_356_993_664_678), res.TokensExpected)

	// Without virtual base reserves the whole virtual token side is bought.
	c = DefaultCurve()
	c.VirtualBaseReserves = 0
	res, err = Estimate(solLamports, c, DefaultFixedCosts)
	require.NoError(t, err)
	assert.True(t, res.Clamped)
	assert.Equal(t, c.VirtualTokenReserves, res.UnclampedTokens)
}

func TestCurveValidate(t *testing.T) {
	require.NoError(t, DefaultCurve().Validate())

	mutations := map[string]func(*CurveConstants){
		"zero virtual base":  func(c *CurveConstants) { c.VirtualBaseReserves = 0 },
		"zero virtual token": func(c *CurveConstants) { c.VirtualTokenReserves = 0 },
		"zero real token":    func(c *CurveConstants) { c.InitialRealTokenReserves = 0 },
		"real above virtual": func(c *CurveConstants) { c.InitialRealTokenReserves = c.VirtualTokenReserves + 1 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			c := DefaultCurve()
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidCurve)
		})
	}
}

func TestEstimateBoundsAndMargin(t *testing.T) {
	curve := DefaultCurve()
	balance := DefaultFixedCosts + 1
	for balance < 2_000_000*solLamports {
		res, err := Estimate(balance, curve, DefaultFixedCosts)
		require.NoError(t, err, "balance %d", balance)

		assert.Greater(t, res.TokensExpected, uint64(0))
		assert.LessOrEqual(t, res.TokensExpected, curve.InitialRealTokenReserves)
		assert.LessOrEqual(t, res.MinTokensOut, res.TokensExpected)
		assert.Equal(t, res.TokensExpected*MinOutPercent/100, res.MinTokensOut)
		assert.Equal(t, res.UnclampedTokens > curve.InitialRealTokenReserves, res.Clamped)
		assert.Equal(t, res.SpendableAmount >= curve.GraduationThreshold, res.GraduationReachable)

		balance = balance*3 + 7
	}
}

func TestEstimateMonotonic(t *testing.T) {
	curve := DefaultCurve()
	var prev Result
	for balance := DefaultFixedCosts + 1; balance < 200*solLamports; balance += 997_123_457 {
		res, err := Estimate(balance, curve, DefaultFixedCosts)
		require.NoError(t, err)
		assert.Greater(t, res.UnclampedTokens, prev.UnclampedTokens, "balance %d", balance)
		assert.GreaterOrEqual(t, res.TokensExpected, prev.TokensExpected, "balance %d", balance)
		assert.GreaterOrEqual(t, res.MinTokensOut, prev.MinTokensOut, "balance %d", balance)
		prev = res
	}
}

func TestEstimateIdempotent(t *testing.T) {
	first, err := Estimate(42*solLamports, DefaultCurve(), DefaultFixedCosts)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Estimate(42*solLamports, DefaultCurve(), DefaultFixedCosts)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, first, r)
	}
}

// referenceEstimate recomputes the clamped output and floor independently.
func referenceEstimate(curve CurveConstants, spendable uint64) (tokens, minOut uint64) {
	vB := new(big.Int).SetUint64(curve.VirtualBaseReserves)
	vT := new(big.Int).SetUint64(curve.VirtualTokenReserves)
	remaining := new(big.Int).Div(new(big.Int).Mul(vB, vT), new(big.Int).Add(vB, new(big.Int).SetUint64(spendable)))
	out := new(big.Int).Sub(vT, remaining)
	if ceiling := new(big.Int).SetUint64(curve.InitialRealTokenReserves); out.Cmp(ceiling) > 0 {
		out = ceiling
	}
	floor := new(big.Int).Div(new(big.Int).Mul(out, big.NewInt(90)), big.NewInt(100))
	return out.Uint64(), floor.Uint64()
}

func TestEstimateLargeConstantsDoNotOverflow(t *testing.T) {
	// k for these constants needs more than 64 bits.
	curve := CurveConstants{
		VirtualBaseReserves:      30_000_000_000_000,
		VirtualTokenReserves:     1_073_000_000_000_000_000,
		InitialRealTokenReserves: 793_100_000_000_000_000,
		GraduationThreshold:      85_000_000_000_000,
	}
	k := new(big.Int).Mul(
		new(big.Int).SetUint64(curve.VirtualBaseReserves),
		new(big.Int).SetUint64(curve.VirtualTokenReserves),
	)
	require.Greater(t, k.BitLen(), 64)

	res, err := Estimate(100*solLamports, curve, DefaultFixedCosts)
	require.NoError(t, err)
	assert.Equal(t, uint64(3_564_268_876_475_041), res.TokensExpected)
	assert.False(t, res.Clamped)
	assert.False(t, res.GraduationReachable)

	const maxBalance uint64 = 1_000_000_000_000_000
	balances := []uint64{0, 1, DefaultFixedCosts, maxBalance}
	for b := DefaultFixedCosts + 1; b < maxBalance; b = b*2 + 3 {
		balances = append(balances, b)
	}
	sawClamp := false
	for _, balance := range balances {
		res, err := Estimate(balance, curve, DefaultFixedCosts)
		if balance <= DefaultFixedCosts {
			assert.ErrorIs(t, err, ErrInsufficientEscrow, "balance %d", balance)
			continue
		}
		require.NoError(t, err, "balance %d", balance)

		tokens, minOut := referenceEstimate(curve, balance-DefaultFixedCosts)
		assert.Equal(t, tokens, res.TokensExpected, "balance %d", balance)
		assert.Equal(t, minOut, res.MinTokensOut, "balance %d", balance)
		assert.LessOrEqual(t, res.MinTokensOut, res.TokensExpected)
		assert.LessOrEqual(t, res.TokensExpected, curve.InitialRealTokenReserves)
		sawClamp = sawClamp || res.Clamped
	}
	assert.True(t, sawClamp, "sweep should reach the real reserve ceiling")
}

func TestEstimateErrorMessage(t *testing.T) {
	_, err := Estimate(100, DefaultCurve(), DefaultFixedCosts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escrow=100")
	assert.Contains(t, err.Error(), "fixed_costs=14500000")
}
