package vanity

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSingleCharSuffix(t *testing.T) {
	res, err := Generate(context.Background(), Options{Suffix: "z", Workers: 2, Timeout: 30 * time.Second})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.PublicKey.String(), "z"))
	assert.Equal(t, res.PublicKey, res.PrivateKey.PublicKey())
	assert.Equal(t, res.PublicKey, res.Signer().PublicKey())
	assert.NotZero(t, res.Attempts)
}

func TestGenerateCaseInsensitive(t *testing.T) {
	res, err := Generate(context.Background(), Options{Prefix: "A", CaseInsensitive: true, Timeout: 30 * time.Second})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.ToLower(res.PublicKey.String()), "a"))
}

func TestGenerateTimeout(t *testing.T) {
	_, err := Generate(context.Background(), Options{Prefix: "zzzzzzzzzz", Workers: 1, Timeout: 20 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search cancelled")
}

func TestOptionsValidate(t *testing.T) {
	assert.Error(t, Options{}.Validate())
	assert.Error(t, Options{Suffix: "lp0"}.Validate(), "l and 0 are not in the base58 alphabet")
	assert.NoError(t, Options{Suffix: "LPAD"}.Validate())
	assert.NoError(t, Options{Suffix: "L0", CaseInsensitive: true}.Validate())
}

func TestEstimateDifficulty(t *testing.T) {
	assert.Equal(t, uint64(1), EstimateDifficulty(0, 0))
	assert.Equal(t, uint64(58*58*58*58), EstimateDifficulty(0, 4))
	assert.Equal(t, uint64(math.MaxUint64), EstimateDifficulty(6, 6))
}
