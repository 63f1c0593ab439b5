// Package client is the Go SDK for the recipe API. It owns the client side
// of the session: the bearer token is kept in a TokenStore, attached to
// every request, and discarded as soon as the server answers 401.
package client

import (
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL points at a locally running API.
	DefaultBaseURL = "http://localhost:8080/api"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
)

// Client talks to the recipe API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenStore
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API root, including the /api prefix.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithTokenStore sets where the session token lives. Defaults to memory.
func WithTokenStore(s TokenStore) Option {
	return func(c *Client) { c.tokens = s }
}

// OnUnauthorized registers a hook run after a 401 cleared the session,
// typically sending the user back to login.
func OnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokens:     NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// LoggedIn reports whether a session token is stored. It does not contact
// the server; use Verify for that.
func (c *Client) LoggedIn() bool {
	tok, err := c.tokens.Load()
	return err == nil && tok != ""
}
