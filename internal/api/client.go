// Package api is the authenticated request gateway to the admin backend.
// Every resource call goes through AuthorizedCall, which attaches the stored
// credential, detects session invalidation and normalizes errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/darkcod/eatadmin/internal/errs"
	"github.com/darkcod/eatadmin/internal/session"
)

// DefaultBaseURL is the production backend origin.
const DefaultBaseURL = "https://darkcod.duckdns.org"

// adminPrefix roots every admin path.
const adminPrefix = "/adminapi"

// UnauthorizedFunc is invoked at most once per call when the session turns out
// to be invalid, before the call fails. Its error propagates to the caller.
type UnauthorizedFunc func(ctx context.Context) error

// RequestOptions tune a single authorized call. Caller headers are merged into
// the request but can never override the Authorization header.
type RequestOptions struct {
	Method string // defaults to GET
	Body   any    // JSON-encoded when non-nil
	Header http.Header
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used by tests to inject
// an httptest server's client).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// Client issues requests against a single backend origin on behalf of the
// stored admin credential.
type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
	log     *zap.Logger
}

// Compile-time check: the client is the controller's authenticator.
var _ session.Authenticator = (*Client)(nil)

// New constructs a Client for the given backend origin.
func New(baseURL string, store session.Store, log *zap.Logger, opts ...Option) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// AuthorizedCall runs one authenticated round trip. The credential is read
// and gated before any network I/O; a 401/403 response empties the store and
// fires onUnauthorized, exactly as a locally invalid credential does.
// Responses outside 401/403 are returned untouched for further decoding.
func (c *Client) AuthorizedCall(ctx context.Context, path string, opts RequestOptions, onUnauthorized UnauthorizedFunc) (*http.Response, error) {
	token, ok := c.store.Read(ctx)
	if !ok || !session.IsAdminToken(token) {
		if err := c.invalidate(ctx, onUnauthorized); err != nil {
			return nil, err
		}
		return nil, errs.New(http.StatusUnauthorized, "authorization required")
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+adminPrefix+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, vs := range opts.Header {
		req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	// set last so caller headers cannot override them
	req.Header.Set("Authorization", "Bearer "+token)
	reqID := uuid.Must(uuid.NewV4()).String()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("reqID", reqID),
			zap.Error(err),
		)
		return nil, errs.Wrap(0, "request failed", err)
	}

	c.log.Debug("api",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
		zap.String("reqID", reqID),
	)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		if err := c.invalidate(ctx, onUnauthorized); err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusForbidden {
			return nil, errs.New(http.StatusForbidden, "access denied")
		}
		return nil, errs.New(http.StatusUnauthorized, "session expired")
	}

	return resp, nil
}

// invalidate empties the store best-effort and fires the callback. A failed
// clear is logged but does not suppress the callback, so in-memory state still
// reflects logged-out even when persistence lags.
func (c *Client) invalidate(ctx context.Context, onUnauthorized UnauthorizedFunc) error {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn("clear credential", zap.Error(err))
	}
	if onUnauthorized != nil {
		return onUnauthorized(ctx)
	}
	return nil
}

// Login performs the unauthenticated login call and returns the issued token.
// It does not touch the store; that is the session controller's job.
func (c *Client) Login(ctx context.Context, login, secret string) (string, error) {
	const fallback = "login failed"

	b, err := json.Marshal(map[string]string{"login": login, "password": secret})
	if err != nil {
		return "", fmt.Errorf("encode login body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+adminPrefix+"/login", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errs.Wrap(0, fallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return "", errs.New(resp.StatusCode, "invalid credentials")
		case http.StatusForbidden:
			return "", errs.New(resp.StatusCode, "access denied")
		default:
			return "", errs.New(resp.StatusCode, detailOr(resp.Body, fallback))
		}
	}

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errs.Wrap(resp.StatusCode, fallback, err)
	}
	if out.AccessToken == "" {
		return "", errs.New(http.StatusInternalServerError, "server returned no token")
	}
	return out.AccessToken, nil
}

// detailOr reads a {"detail": "..."} body, falling back when absent or unparsable.
func detailOr(r io.Reader, fallback string) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&e); err != nil || e.Detail == "" {
		return fallback
	}
	return e.Detail
}

// decodeJSON resolves a gateway response: a 2xx body is parsed into T; any
// other status fails with the body's detail field or the fallback message.
func decodeJSON[T any](resp *http.Response, fallback string) (T, error) {
	var zero T
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, errs.New(resp.StatusCode, detailOr(resp.Body, fallback))
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, errs.Wrap(resp.StatusCode, fallback, err)
	}
	return out, nil
}
