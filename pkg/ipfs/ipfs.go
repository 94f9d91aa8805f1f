// Package ipfs pins token images and metadata JSON through the Pinata API
// and builds the metadata URI a launch is created with.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/ninja0404/launchpad-go-sdk/pkg/config"
	"github.com/ninja0404/launchpad-go-sdk/pkg/types"
)

// MaxFileSize bounds uploads read into memory.
const MaxFileSize = 15 << 20

// APIError is a non-2xx response from the pinning service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ipfs pin %d: %s", e.Status, e.Message)
}

// TokenMetadata is the off-chain metadata JSON pump.fun reads from a mint's URI.
type TokenMetadata struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ShowName    bool   `json:"showName"`
	CreatedOn   string `json:"createdOn,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Telegram    string `json:"telegram,omitempty"`
	Website     string `json:"website,omitempty"`
}

// Client pins content.
type Client struct {
	apiURL     string
	gatewayURL string
	jwt        string
	http       *http.Client
	retries    uint
	retryDelay time.Duration
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger for upload events.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithRetries sets how many times a failed upload is repeated.
func WithRetries(n uint, delay time.Duration) Option {
	return func(c *Client) {
		c.retries = n
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// New builds a client. A JWT is required.
func New(cfg config.IPFSConfig, opts ...Option) (*Client, error) {
	if cfg.JWT == "" {
		return nil, types.NewValidationError("ipfs.jwt", "cannot be empty")
	}
	if cfg.APIURL == "" {
		return nil, types.NewValidationError("ipfs.api_url", "cannot be empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	gateway := cfg.GatewayURL
	if gateway == "" {
		gateway = "https://gateway.pinata.cloud/ipfs/"
	}
	c := &Client{
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		gatewayURL: strings.TrimRight(gateway, "/") + "/",
		jwt:        cfg.JWT,
		http:       &http.Client{Timeout: timeout},
		retries:    2,
		retryDelay: time.Second,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "ipfs").Logger()
	return c, nil
}

// GatewayURL returns the HTTP URL for cid on the configured gateway.
func (c *Client) GatewayURL(cid string) string {
	return c.gatewayURL + cid
}

// PinFile uploads r under name and returns its CID.
func (c *Client) PinFile(ctx context.Context, name string, r io.Reader) (string, error) {
	if name == "" {
		return "", types.NewValidationError("name", "cannot be empty")
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return "", types.NewValidationError("file", "cannot be empty")
	}
	if len(data) > MaxFileSize {
		return "", types.NewValidationError("file", fmt.Sprintf("must be at most %d bytes", MaxFileSize))
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(data); err != nil {
		return "", err
	}
	meta, _ := json.Marshal(map[string]string{"name": name})
	if err := mw.WriteField("pinataMetadata", string(meta)); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	cid, err := c.pin(ctx, "/pinning/pinFileToIPFS", mw.FormDataContentType(), body.Bytes())
	if err != nil {
		return "", fmt.Errorf("pin file %s: %w", name, err)
	}
	c.log.Info().Str("name", name).Str("cid", cid).Int("bytes", len(data)).Msg("pinned file")
	return cid, nil
}

// PinJSON uploads v as a JSON document and returns its CID.
func (c *Client) PinJSON(ctx context.Context, name string, v interface{}) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"pinataContent":  v,
		"pinataMetadata": map[string]string{"name": name},
	})
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	cid, err := c.pin(ctx, "/pinning/pinJSONToIPFS", "application/json", payload)
	if err != nil {
		return "", fmt.Errorf("pin json %s: %w", name, err)
	}
	c.log.Info().Str("name", name).Str("cid", cid).Msg("pinned json")
	return cid, nil
}

// UploadTokenMetadata pins the image, points meta.Image at it, pins the
// metadata and returns the metadata URI to pass to CreateLaunch.
func (c *Client) UploadTokenMetadata(ctx context.Context, meta TokenMetadata, image io.Reader, imageName string) (string, error) {
	if meta.Name == "" || meta.Symbol == "" {
		return "", types.NewValidationError("metadata", "name and symbol are required")
	}
	if image != nil {
		cid, err := c.PinFile(ctx, imageName, image)
		if err != nil {
			return "", err
		}
		meta.Image = c.GatewayURL(cid)
	}
	cid, err := c.PinJSON(ctx, meta.Symbol+"-metadata.json", meta)
	if err != nil {
		return "", err
	}
	uri := c.GatewayURL(cid)
	if len(uri) > types.MaxURILength {
		return "", types.NewValidationError("uri", fmt.Sprintf("gateway URL exceeds %d bytes", types.MaxURILength))
	}
	return uri, nil
}

func (c *Client) pin(ctx context.Context, path, contentType string, payload []byte) (string, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryDelay

	op := func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, bytes.NewReader(payload))
		if err != nil {
			return "", backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+c.jwt)

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", backoff.Permanent(ctx.Err())
			}
			return "", err
		}
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}

		if resp.StatusCode >= 300 {
			apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return "", apiErr
			}
			return "", backoff.Permanent(apiErr)
		}
		cid := gjson.GetBytes(raw, "IpfsHash").String()
		if cid == "" {
			return "", backoff.Permanent(fmt.Errorf("response has no IpfsHash: %s", raw))
		}
		return cid, nil
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.retries+1),
		backoff.WithNotify(func(err error, d time.Duration) {
			c.log.Debug().Str("op", path).Dur("backoff", d).Err(err).Msg("retrying")
		}))
}

// errorMessage reads Pinata's {"error":{"reason","details"}} or
// {"error":"..."} bodies.
func errorMessage(body []byte, status int) string {
	if gjson.ValidBytes(body) {
		res := gjson.ParseBytes(body)
		for _, p := range []string{"error.details", "error.reason", "error", "message"} {
			if v := res.Get(p); v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(status)
}
