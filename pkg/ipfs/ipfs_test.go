package ipfs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninja0404/launchpad-go-sdk/pkg/config"
	"github.com/ninja0404/launchpad-go-sdk/pkg/types"
)

type pinata struct {
	calls    atomic.Int32
	failures atomic.Int32
	lastJSON map[string]json.RawMessage
}

func newPinata(t *testing.T) (*pinata, *httptest.Server) {
	p := &pinata{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pinning/pinFileToIPFS", func(w http.ResponseWriter, r *http.Request) {
		p.calls.Add(1)
		if !p.authorized(w, r) || p.fail(w) {
			return
		}
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		assert.NotEmpty(t, data)
		assert.Equal(t, "logo.png", hdr.Filename)
		assert.Equal(t, `{"name":"logo.png"}`, r.FormValue("pinataMetadata"))
		_, _ = w.Write([]byte(`{"IpfsHash":"QmImage","PinSize":4}`))
	})
	mux.HandleFunc("POST /pinning/pinJSONToIPFS", func(w http.ResponseWriter, r *http.Request) {
		p.calls.Add(1)
		if !p.authorized(w, r) || p.fail(w) {
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p.lastJSON))
		_, _ = w.Write([]byte(`{"IpfsHash":"QmMeta","PinSize":120}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return p, srv
}

func (p *pinata) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer test-jwt" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"reason":"INVALID_CREDENTIALS","details":"Invalid/expired credentials"}}`))
		return false
	}
	return true
}

func (p *pinata) fail(w http.ResponseWriter) bool {
	if p.failures.Load() > 0 {
		p.failures.Add(-1)
		w.WriteHeader(http.StatusBadGateway)
		return true
	}
	return false
}

func newClient(t *testing.T, srv *httptest.Server, jwt string) *Client {
	t.Helper()
	c, err := New(config.IPFSConfig{APIURL: srv.URL, GatewayURL: "https://ipfs.example/ipfs", JWT: jwt},
		WithRetries(2, time.Millisecond))
	require.NoError(t, err)
	return c
}

func TestUploadTokenMetadata(t *testing.T) {
	p, srv := newPinata(t)
	c := newClient(t, srv, "test-jwt")

	uri, err := c.UploadTokenMetadata(context.Background(), TokenMetadata{
		Name:     "Launch Token",
		Symbol:   "LPAD",
		ShowName: true,
	}, strings.NewReader("\x89PNG"), "logo.png")
	require.NoError(t, err)
	assert.Equal(t, "https://ipfs.example/ipfs/QmMeta", uri)

	var meta TokenMetadata
	require.NoError(t, json.Unmarshal(p.lastJSON["pinataContent"], &meta))
	assert.Equal(t, "https://ipfs.example/ipfs/QmImage", meta.Image)
	assert.Equal(t, "LPAD", meta.Symbol)
	assert.JSONEq(t, `{"name":"LPAD-metadata.json"}`, string(p.lastJSON["pinataMetadata"]))
}

func TestPinRetriesGatewayErrors(t *testing.T) {
	p, srv := newPinata(t)
	c := newClient(t, srv, "test-jwt")

	p.failures.Store(2)
	cid, err := c.PinJSON(context.Background(), "x", map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "QmMeta", cid)
	assert.Equal(t, int32(3), p.calls.Load())
}

func TestPinDoesNotRetryAuthErrors(t *testing.T) {
	p, srv := newPinata(t)
	c := newClient(t, srv, "wrong")

	_, err := c.PinFile(context.Background(), "logo.png", strings.NewReader("img"))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid/expired credentials", apiErr.Message)
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestValidation(t *testing.T) {
	_, srv := newPinata(t)
	c := newClient(t, srv, "test-jwt")
	ctx := context.Background()
	var verr types.ValidationError

	_, err := c.PinFile(ctx, "empty.png", strings.NewReader(""))
	assert.ErrorAs(t, err, &verr)

	_, err = c.UploadTokenMetadata(ctx, TokenMetadata{Name: "x"}, nil, "")
	assert.ErrorAs(t, err, &verr)

	_, err = New(config.IPFSConfig{APIURL: srv.URL})
	assert.ErrorAs(t, err, &verr)
}

func TestGatewayURL(t *testing.T) {
	c, err := New(config.IPFSConfig{APIURL: "https://api.pinata.cloud", JWT: "j"})
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/Qm1", c.GatewayURL("Qm1"))
}
