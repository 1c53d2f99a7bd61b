// Package apiclient talks JSON to the dashboard's REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/pmdash/internal/kvcache"
	"github.com/rpggio/pmdash/internal/repository"
	"github.com/rpggio/pmdash/internal/store"
)

// DefaultTimeout bounds a call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Navigator is the view layer as the 401 interceptor sees it.
type Navigator interface {
	// OnAuthScreen reports whether the user is already on a login screen.
	OnAuthScreen() bool
	RedirectToLogin()
}

// hooks are shared between a client and the copies WithTimeout makes.
type hooks struct {
	mu             sync.RWMutex
	nav            Navigator
	onUnauthorized func(context.Context)
}

// Client sends authenticated JSON requests to the remote API.
type Client struct {
	base    string
	http    *http.Client
	cache   kvcache.Cache
	timeout time.Duration
	logger  *slog.Logger
	hooks   *hooks
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithDefaultTimeout sets the per-call timeout.
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithNavigator sets the navigator consulted on 401.
func WithNavigator(nav Navigator) Option {
	return func(c *Client) { c.hooks.nav = nav }
}

// New creates a client for baseURL. The cache supplies the bearer token and
// may be nil.
func New(baseURL string, cache kvcache.Cache, logger *slog.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		cache:   cache,
		timeout: DefaultTimeout,
		logger:  store.Logger(logger),
		hooks:   &hooks{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithTimeout returns a client sharing c's configuration and hooks with a
// different per-call timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	cp := *c
	cp.timeout = d
	return &cp
}

// SetNavigator replaces the navigator consulted on 401.
func (c *Client) SetNavigator(nav Navigator) {
	c.hooks.mu.Lock()
	c.hooks.nav = nav
	c.hooks.mu.Unlock()
}

// OnUnauthorized registers fn to run when a non-auth call gets 401.
func (c *Client) OnUnauthorized(fn func(context.Context)) {
	c.hooks.mu.Lock()
	c.hooks.onUnauthorized = fn
	c.hooks.mu.Unlock()
}

// Do sends one request. body is encoded as JSON when non-nil; out, when
// non-nil, receives the response with any {"data": ...} envelope removed.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(callCtx, method, target, reader)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "error", err)
		return c.transportError(ctx, method, path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{Method: method, Path: path, Status: resp.StatusCode, Message: errorMessage(resp.Body)}
		if resp.StatusCode == http.StatusUnauthorized {
			c.unauthorized(ctx, path)
		}
		return serr
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportError(ctx, method, path, err)
	}
	if err := decode(raw, out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) token(ctx context.Context) string {
	if c.cache == nil {
		return ""
	}
	token, _, err := c.cache.Get(ctx, kvcache.KeyAuthToken)
	if err != nil {
		c.logger.Warn("reading cached token", "error", err)
		return ""
	}
	return token
}

// transportError classifies a failed round trip. The caller's own
// cancellation is returned as is.
func (c *Client) transportError(ctx context.Context, method, path string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s after %s: %w", method, path, c.timeout, repository.ErrTimeout)
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return fmt.Errorf("%s %s after %s: %w", method, path, c.timeout, repository.ErrTimeout)
	}
	return fmt.Errorf("%s %s: %w: %w", method, path, repository.ErrUnavailable, err)
}

// IsAuthEndpoint reports whether path is a login or register call.
func IsAuthEndpoint(path string) bool {
	return strings.Contains(path, "/login") || strings.Contains(path, "/register")
}

// unauthorized drops the cached session and sends the user to login, unless
// the call was itself an auth call or the user is already on an auth screen.
func (c *Client) unauthorized(ctx context.Context, path string) {
	c.hooks.mu.RLock()
	nav, hook := c.hooks.nav, c.hooks.onUnauthorized
	c.hooks.mu.RUnlock()

	if IsAuthEndpoint(path) || (nav != nil && nav.OnAuthScreen()) {
		return
	}
	c.logger.Info("session rejected by api", "path", path)
	if c.cache != nil {
		for _, key := range []string{kvcache.KeyAuthToken, kvcache.KeyAuthUser} {
			if err := c.cache.Remove(ctx, key); err != nil {
				c.logger.Warn("clearing cached session", "key", key, "error", err)
			}
		}
	}
	if hook != nil {
		hook(ctx)
	}
	if nav != nil {
		nav.RedirectToLogin()
	}
}

func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// decode unmarshals raw into out, unwrapping a {"data": ...} envelope.
func decode(raw []byte, out any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == '{' {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(raw, &env); err == nil {
			if data, ok := env["data"]; ok {
				raw = data
			}
		}
	}
	return json.Unmarshal(raw, out)
}
