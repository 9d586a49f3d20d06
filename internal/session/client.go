package session

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"recruitflow-go/internal/platform/config"
	"recruitflow-go/internal/platform/errors"
	"recruitflow-go/internal/platform/logging"
)

const (
	loginEndpoint   = "/api/auth/token/"
	refreshEndpoint = "/api/auth/token/refresh/"
	logoutEndpoint  = "/api/accounts/logout/"
	csrfEndpoint    = "/api/csrf/"

	csrfCookieName = "csrftoken"
	csrfHeaderName = "X-CSRFToken"
)

// Client performs authenticated HTTP exchanges against a single base URL. It
// owns the token pair, attaches auth and anti-forgery headers and recovers
// from an expired access token by refreshing once and retrying once.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logging.Logger
	store   *Store

	mu      sync.RWMutex
	session *Session
	expire  *sync.Once

	refreshGroup singleflight.Group

	// OnSessionExpired is invoked exactly once per session teardown, the
	// client-side signal to navigate back to the login view.
	OnSessionExpired func()
}

// NewClient builds a Client for the configured backend. A previously
// persisted session is restored when the store holds one.
func NewClient(cfg config.APIConfig, store *Store, logger *logging.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New(errors.KindConfig, "client.new", "base URL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(errors.KindConfig, "client.new", "create cookie jar", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	if store == nil {
		store = NewStore("")
	}
	sess, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		logger:  logger,
		store:   store,
		session: sess,
		expire:  &sync.Once{},
	}, nil
}

// Session returns a copy of the current session state.
func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return *c.session
}

// Adopt replaces the live session with an externally obtained one and arms a
// fresh expiry cycle.
func (c *Client) Adopt(sess Session) {
	c.mu.Lock()
	c.session = &sess
	c.expire = &sync.Once{}
	c.mu.Unlock()

	if err := c.store.Save(&sess); err != nil {
		c.logger.WarnTag("AUTH", "failed to persist session: %v", err)
	}
}

// Authenticated reports whether an access token is currently held.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Authenticated()
}

// TokenExpiresWithin reports whether the held access token expires within d.
// Tokens that cannot be parsed are assumed valid; the 401 path covers them.
func (c *Client) TokenExpiresWithin(d time.Duration) bool {
	c.mu.RLock()
	access := c.session.Access
	c.mu.RUnlock()

	if access == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < d
}

// LoginResult is the decoded login response.
type LoginResult struct {
	Access  string         `json:"access"`
	Refresh string         `json:"refresh"`
	User    map[string]any `json:"user"`
}

// Login exchanges credentials for a token pair and stores the session.
func (c *Client) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	body := map[string]string{"identifier": identifier, "password": password}

	resp, err := c.Do(ctx, http.MethodPost, loginEndpoint, &Options{
		Body:     body,
		SkipAuth: true,
		// a login rejection is an auth failure, not an API failure
		noRetry: true,
	})
	if err != nil {
		if apiErr, ok := errors.AsAPI(err); ok {
			msg := apiErr.Message
			if msg == "request failed" {
				msg = "login failed"
			}
			return nil, errors.New(errors.KindAuth, "login", msg)
		}
		return nil, err
	}

	var result LoginResult
	if err := resp.Decode(&result); err != nil {
		return nil, errors.Wrap(errors.KindAuth, "login", "decode login response", err)
	}

	c.mu.Lock()
	c.session.Access = result.Access
	c.session.Refresh = result.Refresh
	c.session.User = result.User
	c.expire = &sync.Once{}
	sess := *c.session
	c.mu.Unlock()

	if err := c.store.Save(&sess); err != nil {
		c.logger.WarnTag("AUTH", "failed to persist session: %v", err)
	}
	c.logger.InfoTag("AUTH", "login succeeded")
	return &result, nil
}

// Refresh exchanges the stored refresh token for a new access token.
// Concurrent callers share one refresh; an irrecoverable failure clears the
// session and fires OnSessionExpired exactly once.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return c.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) doRefresh(ctx context.Context) (string, error) {
	c.mu.RLock()
	refresh := c.session.Refresh
	c.mu.RUnlock()

	// local precondition, no network call
	if refresh == "" {
		return "", errors.New(errors.KindAuth, "refresh", "no refresh token available")
	}

	resp, err := c.Do(ctx, http.MethodPost, refreshEndpoint, &Options{
		Body:     map[string]string{"refresh": refresh},
		SkipAuth: true,
		noRetry:  true,
	})
	if err != nil {
		c.logger.WarnTag("AUTH", "token refresh failed: %v", err)
		c.teardown()
		if errors.IsKind(err, errors.KindAPI) {
			return "", errors.Wrap(errors.KindAuth, "refresh", "refresh rejected", err)
		}
		return "", err
	}

	var result struct {
		Access string `json:"access"`
	}
	if err := resp.Decode(&result); err != nil {
		c.teardown()
		return "", errors.Wrap(errors.KindAuth, "refresh", "decode refresh response", err)
	}

	c.mu.Lock()
	c.session.Access = result.Access
	sess := *c.session
	c.mu.Unlock()

	if err := c.store.Save(&sess); err != nil {
		c.logger.WarnTag("AUTH", "failed to persist session: %v", err)
	}
	c.logger.DebugTag("AUTH", "access token refreshed")
	return result.Access, nil
}

// Logout posts to the logout endpoint best-effort, then unconditionally
// clears local session state and signals the expiry hook.
func (c *Client) Logout(ctx context.Context) {
	defer c.teardown()

	_, err := c.Do(ctx, http.MethodPost, logoutEndpoint, &Options{noRetry: true})
	if err != nil {
		c.logger.WarnTag("AUTH", "logout request failed: %v", err)
	}
}

// teardown clears the session and fires the expiry hook. Safe to call from
// concurrent paths; the clear and hook run once per live session.
func (c *Client) teardown() {
	c.mu.Lock()
	once := c.expire
	c.mu.Unlock()

	once.Do(func() {
		c.mu.Lock()
		c.session = &Session{}
		c.mu.Unlock()

		if err := c.store.Clear(); err != nil {
			c.logger.WarnTag("AUTH", "failed to clear persisted session: %v", err)
		}
		c.logger.InfoTag("AUTH", "session cleared")

		if c.OnSessionExpired != nil {
			c.OnSessionExpired()
		}
	})
}

// FetchCSRFToken asks the backend for an anti-forgery token, falling back to
// the csrftoken cookie. Failure is non-fatal; the client stays usable.
func (c *Client) FetchCSRFToken(ctx context.Context) string {
	resp, err := c.Do(ctx, http.MethodGet, csrfEndpoint, &Options{SkipAuth: true, noRetry: true})
	if err == nil {
		var body struct {
			CSRFToken string `json:"csrfToken"`
		}
		if decErr := resp.Decode(&body); decErr == nil && body.CSRFToken != "" {
			c.setCSRF(body.CSRFToken)
			return body.CSRFToken
		}
	} else {
		c.logger.WarnTag("AUTH", "csrf endpoint unavailable: %v", err)
	}

	if token := c.csrfFromCookie(); token != "" {
		c.setCSRF(token)
		return token
	}
	return ""
}

func (c *Client) setCSRF(token string) {
	c.mu.Lock()
	c.session.CSRF = token
	c.mu.Unlock()
}

func (c *Client) csrfFromCookie() string {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.http.Jar.Cookies(base) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}

// Options tunes a single request issued through Do.
type Options struct {
	// Body is JSON-encoded when non-nil.
	Body any
	// Query is appended to the endpoint. Encoding is deterministic.
	Query url.Values
	// SkipAuth omits the Authorization header.
	SkipAuth bool

	noRetry bool
}

// Response is a decoded backend reply. JSON bodies can be unmarshalled via
// Decode; binary replies expose the raw bytes.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsJSON reports whether the response declared a JSON content type.
func (r *Response) IsJSON() bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}

// Decode unmarshals a JSON response body into v.
func (r *Response) Decode(v any) error {
	return sonic.Unmarshal(r.Body, v)
}

// Do is the universal request entry point. On a 401 it refreshes the access
// token and retries the identical request exactly once; a second 401
// propagates so a backend that always rejects cannot loop the client.
func (c *Client) Do(ctx context.Context, method, endpoint string, opts *Options) (*Response, error) {
	if opts == nil {
		opts = &Options{}
	}

	var payload []byte
	if opts.Body != nil {
		var err error
		payload, err = sonic.Marshal(opts.Body)
		if err != nil {
			return nil, errors.Wrap(errors.KindAPI, "request", "encode request body", err)
		}
	}

	resp, err := c.send(ctx, method, endpoint, opts, payload)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !opts.noRetry {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		c.logger.DebugTag("HTTP", "401 on %s %s, refreshing token", method, endpoint)
		if _, err := c.Refresh(ctx); err != nil {
			return nil, err
		}
		resp, err = c.send(ctx, method, endpoint, opts, payload)
		if err != nil {
			return nil, err
		}
	}

	return c.finish(method, endpoint, resp)
}

// DoRaw issues a request with a caller-provided body and content type,
// bypassing the JSON header defaults. Used for multipart uploads, where the
// writer computes the boundary and the body stream cannot be replayed, so no
// 401 retry is attempted.
func (c *Client) DoRaw(ctx context.Context, method, endpoint, contentType string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, errors.Wrap(errors.KindAPI, "request", "build request", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	c.applyAuthHeaders(req, false)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.KindNetwork, "request", method+" "+endpoint, err)
	}

	return c.finish(method, endpoint, resp)
}

func (c *Client) send(ctx context.Context, method, endpoint string, opts *Options, payload []byte) (*http.Response, error) {
	target := c.baseURL + endpoint
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errors.Wrap(errors.KindAPI, "request", "build request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	c.applyAuthHeaders(req, opts.SkipAuth)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnTag("HTTP", "%s %s failed: %v", method, endpoint, err)
		return nil, errors.Wrap(errors.KindNetwork, "request", method+" "+endpoint, err)
	}
	return resp, nil
}

// applyAuthHeaders reads the live session, so a retry after refresh picks up
// the new access token.
func (c *Client) applyAuthHeaders(req *http.Request, skipAuth bool) {
	c.mu.RLock()
	access := c.session.Access
	csrf := c.session.CSRF
	c.mu.RUnlock()

	if csrf != "" {
		req.Header.Set(csrfHeaderName, csrf)
	}
	if access != "" && !skipAuth {
		req.Header.Set("Authorization", "Bearer "+access)
	}
}

func (c *Client) finish(method, endpoint string, resp *http.Response) (*Response, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.KindNetwork, "request", "read response body", err)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var detail map[string]any
		if out.IsJSON() {
			_ = sonic.Unmarshal(data, &detail)
		}
		c.logger.WarnTag("HTTP", "%s %s -> %d", method, endpoint, resp.StatusCode)
		return nil, errors.NewAPI(method+" "+endpoint, resp.StatusCode, detail)
	}

	c.logger.DebugTag("HTTP", "%s %s -> %d", method, endpoint, resp.StatusCode)
	return out, nil
}
