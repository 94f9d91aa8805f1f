// Package social is a client for the launchpad's companion social service:
// wallet-signature login, profiles, comments and follows.
//
// Login proves wallet ownership by signing a server-issued challenge; the
// returned bearer token is cached and renewed with the same signer when it
// expires.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/ninja0404/launchpad-go-sdk/pkg/config"
	"github.com/ninja0404/launchpad-go-sdk/pkg/types"
	"github.com/ninja0404/launchpad-go-sdk/pkg/wallet"
)

// MaxCommentLength is the longest comment the service accepts, in bytes.
const MaxCommentLength = 500

// tokenSkew renews a session slightly before the server expires it.
const tokenSkew = 30 * time.Second

// ErrNotLoggedIn is returned by authenticated calls before Login.
var ErrNotLoggedIn = errors.New("social: not logged in")

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("social api %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("social api %d: %s", e.Status, e.Message)
}

// Temporary reports whether the request may succeed if repeated.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// Challenge is the message a wallet signs to log in.
type Challenge struct {
	Nonce     string    `json:"nonce"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Session is an authenticated login.
type Session struct {
	Token     string           `json:"token"`
	Wallet    solana.PublicKey `json:"wallet"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// Profile is a wallet's public profile.
type Profile struct {
	Wallet    solana.PublicKey `json:"wallet"`
	Username  string           `json:"username"`
	Bio       string           `json:"bio"`
	AvatarURL string           `json:"avatarUrl"`
	Twitter   string           `json:"twitter"`
	Followers int              `json:"followers"`
	Following int              `json:"following"`
	CreatedAt time.Time        `json:"createdAt"`
}

// ProfileUpdate changes the non-nil fields of the caller's profile.
type ProfileUpdate struct {
	Username  *string `json:"username,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
}

// Comment is a message on a launch page.
type Comment struct {
	ID        string           `json:"id"`
	Launch    solana.PublicKey `json:"launch"`
	Author    solana.PublicKey `json:"author"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"createdAt"`
}

// CommentPage is one page of comments, newest first.
type CommentPage struct {
	Comments   []Comment `json:"comments"`
	NextCursor string    `json:"nextCursor"`
}

// Client talks to the social service. It is safe for concurrent use.
type Client struct {
	baseURL    string
	http       *http.Client
	limiter    *rate.Limiter
	retries    uint
	retryDelay time.Duration
	log        zerolog.Logger
	now        func() time.Time

	mu      sync.Mutex
	session Session
	signer  wallet.Signer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger for retry events.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithRetryDelay sets the initial backoff interval.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithClock replaces time.Now for session expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New builds a client from cfg. A zero RPS disables rate limiting.
func New(cfg config.SocialConfig, opts ...Option) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, types.NewValidationError("social.base_url", "cannot be empty")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, types.NewValidationError("social.base_url", err.Error())
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:    base,
		http:       &http.Client{Timeout: timeout},
		retries:    cfg.Retries,
		retryDelay: 500 * time.Millisecond,
		log:        zerolog.Nop(),
		now:        time.Now,
	}
	if cfg.RPS > 0 {
		burst := int(cfg.RPS)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "social").Logger()
	return c, nil
}

// Login signs a fresh challenge with signer and stores the session. The
// signer is kept to renew the session when it expires.
func (c *Client) Login(ctx context.Context, signer wallet.Signer) (Session, error) {
	if signer == nil {
		return Session{}, types.ErrNilSigner
	}
	walletKey := signer.PublicKey()

	var ch Challenge
	q := url.Values{"wallet": {walletKey.String()}}
	if err := c.do(ctx, http.MethodGet, "/auth/challenge?"+q.Encode(), nil, "", &ch); err != nil {
		return Session{}, fmt.Errorf("get challenge: %w", err)
	}
	if ch.Message == "" || ch.Nonce == "" {
		return Session{}, fmt.Errorf("get challenge: empty challenge")
	}

	sig, err := wallet.SignText(ctx, signer, ch.Message)
	if err != nil {
		return Session{}, fmt.Errorf("sign challenge: %w", err)
	}

	body := map[string]string{
		"wallet":    walletKey.String(),
		"nonce":     ch.Nonce,
		"signature": sig,
	}
	var s Session
	if err := c.do(ctx, http.MethodPost, "/auth/verify", body, "", &s); err != nil {
		return Session{}, fmt.Errorf("verify challenge: %w", err)
	}
	if s.Token == "" {
		return Session{}, fmt.Errorf("verify challenge: empty token")
	}
	if s.Wallet.IsZero() {
		s.Wallet = walletKey
	}

	c.mu.Lock()
	c.session = s
	c.signer = signer
	c.mu.Unlock()
	c.log.Debug().Str("wallet", walletKey.String()).Time("expires_at", s.ExpiresAt).Msg("logged in")
	return s, nil
}

// Token returns the current bearer token and whether it is still valid.
func (c *Client) Token() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Token, c.validLocked()
}

// Logout drops the cached session and signer.
func (c *Client) Logout() {
	c.mu.Lock()
	c.session = Session{}
	c.signer = nil
	c.mu.Unlock()
}

func (c *Client) validLocked() bool {
	if c.session.Token == "" {
		return false
	}
	if c.session.ExpiresAt.IsZero() {
		return true
	}
	return c.now().Add(tokenSkew).Before(c.session.ExpiresAt)
}

// bearer returns a valid token, logging in again with the cached signer
// when the session has expired or force is set.
func (c *Client) bearer(ctx context.Context, force bool) (string, error) {
	c.mu.Lock()
	token, ok, signer := c.session.Token, c.validLocked(), c.signer
	c.mu.Unlock()
	if ok && !force {
		return token, nil
	}
	if signer == nil {
		return "", ErrNotLoggedIn
	}
	s, err := c.Login(ctx, signer)
	if err != nil {
		return "", fmt.Errorf("renew session: %w", err)
	}
	return s.Token, nil
}

// authed runs an authenticated request, renewing the session once if the
// server rejects the token.
func (c *Client) authed(ctx context.Context, method, path string, body, out interface{}) error {
	token, err := c.bearer(ctx, false)
	if err != nil {
		return err
	}
	err = c.do(ctx, method, path, body, token, out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		if token, err = c.bearer(ctx, true); err != nil {
			return err
		}
		return c.do(ctx, method, path, body, token, out)
	}
	return err
}

// GetProfile fetches a wallet's public profile.
func (c *Client) GetProfile(ctx context.Context, walletKey solana.PublicKey) (*Profile, error) {
	if err := types.ValidatePublicKey("wallet", walletKey); err != nil {
		return nil, err
	}
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/profiles/"+walletKey.String(), nil, "", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile changes the logged-in wallet's profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	if update.Username != nil {
		if n := len(*update.Username); n == 0 || n > 32 {
			return nil, types.NewValidationError("username", "must be 1 to 32 bytes")
		}
	}
	var p Profile
	if err := c.authed(ctx, http.MethodPatch, "/profiles/me", update, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListComments returns a page of comments on a launch. An empty cursor
// starts from the newest.
func (c *Client) ListComments(ctx context.Context, launch solana.PublicKey, limit int, cursor string) (*CommentPage, error) {
	if err := types.ValidatePublicKey("launch", launch); err != nil {
		return nil, err
	}
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	path := "/launches/" + launch.String() + "/comments"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var page CommentPage
	if err := c.do(ctx, http.MethodGet, path, nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PostComment posts text on a launch as the logged-in wallet.
func (c *Client) PostComment(ctx context.Context, launch solana.PublicKey, text string) (*Comment, error) {
	if err := types.ValidatePublicKey("launch", launch); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, types.NewValidationError("text", "cannot be empty")
	}
	if len(text) > MaxCommentLength {
		return nil, types.NewValidationError("text", fmt.Sprintf("must be at most %d bytes", MaxCommentLength))
	}
	var cm Comment
	if err := c.authed(ctx, http.MethodPost, "/launches/"+launch.String()+"/comments", map[string]string{"text": text}, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// Follow follows a wallet.
func (c *Client) Follow(ctx context.Context, walletKey solana.PublicKey) error {
	if err := types.ValidatePublicKey("wallet", walletKey); err != nil {
		return err
	}
	return c.authed(ctx, http.MethodPost, "/profiles/"+walletKey.String()+"/follow", nil, nil)
}

// Unfollow stops following a wallet.
func (c *Client) Unfollow(ctx context.Context, walletKey solana.PublicKey) error {
	if err := types.ValidatePublicKey("wallet", walletKey); err != nil {
		return err
	}
	return c.authed(ctx, http.MethodDelete, "/profiles/"+walletKey.String()+"/follow", nil, nil)
}

// do sends one logical request, retrying 429, 5xx and transport errors.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, token string, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryDelay
	policy.MaxInterval = c.retryDelay * 10

	op := func() ([]byte, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, backoff.Permanent(err)
			}
		}
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, err
		}
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 300 {
			apiErr := decodeAPIError(resp.StatusCode, raw)
			if apiErr.Temporary() {
				return nil, apiErr
			}
			return nil, backoff.Permanent(apiErr)
		}
		return raw, nil
	}

	notify := func(err error, d time.Duration) {
		c.log.Debug().Str("op", method+" "+path).Dur("backoff", d).Err(err).Msg("retrying")
	}

	raw, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.retries+1),
		backoff.WithNotify(notify))
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeAPIError reads {"error":{"code","message"}}, {"code","message"} or
// {"error":"..."} bodies, falling back to the raw text.
func decodeAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	if gjson.ValidBytes(body) {
		res := gjson.ParseBytes(body)
		e.Code = firstString(res, "error.code", "code")
		e.Message = firstString(res, "error.message", "message", "error")
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func firstString(res gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := res.Get(p); v.Exists() && v.Type == gjson.String {
			return v.String()
		}
	}
	return ""
}
