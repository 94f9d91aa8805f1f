package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/launchpad-go-sdk/pkg/config"
)

// fakeNode answers JSON-RPC requests with handler's result, echoing the id.
func fakeNode(t *testing.T, handler func(method string) (interface{}, int)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		require.NoError(t, json.Unmarshal(body, &req))

		result, status := handler(req.Method)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(url string) config.RPCConfig {
	cfg := config.DefaultRPCConfig()
	cfg.Network = config.NetworkCustom
	cfg.RPCURL = url
	cfg.Timeout = 2 * time.Second
	cfg.RateLimit.RPS = 0
	cfg.Retry.InitialBackoff = time.Millisecond
	cfg.Retry.MaxBackoff = 2 * time.Millisecond
	return cfg
}

func TestGetBalance(t *testing.T) {
	srv := fakeNode(t, func(method string) (interface{}, int) {
		assert.Equal(t, "getBalance", method)
		return map[string]interface{}{"context": map[string]interface{}{"slot": 1}, "value": 85_014_500_000}, http.StatusOK
	})

	c := NewClient(testConfig(srv.URL))
	bal, err := c.GetBalance(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, uint64(85_014_500_000), bal)
}

func TestGetAccountDataMissing(t *testing.T) {
	srv := fakeNode(t, func(string) (interface{}, int) {
		return map[string]interface{}{"context": map[string]interface{}{"slot": 1}, "value": nil}, http.StatusOK
	})

	c := NewClient(testConfig(srv.URL))
	_, err := c.GetAccountData(context.Background(), solana.NewWallet().PublicKey())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCallRetriesServerErrors(t *testing.T) {
	var hits int32
	srv := fakeNode(t, func(string) (interface{}, int) {
		if atomic.AddInt32(&hits, 1) < 3 {
			return nil, http.StatusBadGateway
		}
		return map[string]interface{}{"context": map[string]interface{}{"slot": 1}, "value": 7}, http.StatusOK
	})

	c := NewClient(testConfig(srv.URL))
	bal, err := c.GetBalance(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), bal)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestCallGivesUpAfterMaxAttempts(t *testing.T) {
	var hits int32
	srv := fakeNode(t, func(string) (interface{}, int) {
		atomic.AddInt32(&hits, 1)
		return nil, http.StatusServiceUnavailable
	})

	cfg := testConfig(srv.URL)
	cfg.Retry.MaxAttempts = 2
	_, err := NewClient(cfg).GetBalance(context.Background(), solana.NewWallet().PublicKey())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "getBalance failed after 2 attempts")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestRetryable(t *testing.T) {
	assert.False(t, retryable(ErrAccountNotFound))
	assert.False(t, retryable(context.Canceled))
	assert.False(t, retryable(errors.New("Invalid params: bad pubkey")))
	assert.True(t, retryable(errors.New("connection reset by peer")))
}

func TestBackoffCapped(t *testing.T) {
	c := &Client{cfg: config.RPCConfig{Retry: config.RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     300 * time.Millisecond,
	}}}
	assert.Equal(t, 100*time.Millisecond, c.backoff(0))
	assert.Equal(t, 200*time.Millisecond, c.backoff(1))
	assert.Equal(t, 300*time.Millisecond, c.backoff(5))
}
