package vidtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tuber/internal/logging"
)

// TokenSource supplies and stores the credentials the client attaches to
// requests. Implemented by session.Session.
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	SetAccessToken(token string)
	ClearAccessToken()
}

// APIError carries the backend's status code and message for non-2xx
// responses so the UI can show the server-provided text when there is one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api returned status %d", e.StatusCode)
}

// Client talks to the VidTube HTTP API.
//
// Two instances share one TokenSource in a running app: the authed client
// signals forced logout through onAuthExpired when a refresh fails, while the
// public client (for views usable signed out) performs the same single
// refresh-and-retry but never forces logout.
type Client struct {
	baseURL       *url.URL
	http          *http.Client
	tokens        TokenSource
	userAgent     string
	public        bool
	onAuthExpired func()
	refreshMu     sync.Mutex
	log           *logrus.Entry
}

const (
	defaultUserAgent = "tuber/0.1"
	requestTimeout   = 10 * time.Second
)

// Option configures a Client.
type Option func(*Client)

// Public marks the client as usable without a session: refresh failures clear
// the stored token but never trigger the auth-expired callback.
func Public() Option {
	return func(c *Client) { c.public = true }
}

// WithAuthExpired registers the callback invoked when a 401 cannot be
// recovered by a refresh-token exchange.
func WithAuthExpired(fn func()) Option {
	return func(c *Client) { c.onAuthExpired = fn }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient builds a Client for the given API base URL.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		tokens:    tokens,
		userAgent: defaultUserAgent,
		log:       logging.Component("vidtube"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	return c.do(ctx, http.MethodGet, &url.URL{Path: path, RawQuery: query.Encode()}, nil, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPost, &url.URL{Path: path}, body, dest)
}

func (c *Client) patch(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPatch, &url.URL{Path: path}, body, dest)
}

func (c *Client) delete(ctx context.Context, path string, dest any) error {
	return c.do(ctx, http.MethodDelete, &url.URL{Path: path}, nil, dest)
}

// do issues one request with the bearer token attached when present. On a 401
// it performs at most one refresh-token exchange and one retry; beyond that
// every failure surfaces to the caller untouched.
func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	var payload []byte
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = encoded
		contentType = "application/json"
	}

	status, respBody, err := c.send(ctx, method, rel, payload, contentType)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		if !c.refreshAccessToken(ctx) {
			return &APIError{StatusCode: status, Message: serverMessage(respBody)}
		}
		status, respBody, err = c.send(ctx, method, rel, payload, contentType)
		if err != nil {
			return err
		}
	}

	if status >= 400 {
		return &APIError{StatusCode: status, Message: serverMessage(respBody)}
	}
	if dest == nil {
		return nil
	}
	return decodeInto(respBody, dest)
}

func (c *Client) send(ctx context.Context, method string, rel *url.URL, payload []byte, contentType string) (int, []byte, error) {
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + rel.Path
	reqURL.RawQuery = rel.RawQuery

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// refreshAccessToken exchanges the stored refresh token for a new access
// token. Returns true when the original request should be retried. On failure
// the stored access token is cleared; the authed client additionally signals
// forced logout.
func (c *Client) refreshAccessToken(ctx context.Context) bool {
	refresh := c.tokens.RefreshToken()
	if refresh == "" {
		c.expireAuth()
		return false
	}

	// Concurrent 401s must not race each other's exchanges.
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	body, err := json.Marshal(map[string]string{"refreshToken": refresh})
	if err != nil {
		return false
	}
	status, respBody, err := c.send(ctx, http.MethodPost, &url.URL{Path: "/users/refresh-token"}, body, "application/json")
	if err != nil || status >= 400 {
		c.log.WithField("status", status).Warn("token refresh failed")
		c.expireAuth()
		return false
	}

	var payload AuthPayload
	if err := decodeInto(respBody, &payload); err != nil || payload.AccessToken == "" {
		c.expireAuth()
		return false
	}
	c.tokens.SetAccessToken(payload.AccessToken)
	c.log.Debug("access token refreshed")
	return true
}

func (c *Client) expireAuth() {
	c.tokens.ClearAccessToken()
	if !c.public && c.onAuthExpired != nil {
		c.onAuthExpired()
	}
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
