package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/signkeeper/internal/client/session"
	"github.com/dmitrijs2005/signkeeper/internal/common"
	"github.com/dmitrijs2005/signkeeper/internal/logging"
	"github.com/google/uuid"
)

// DefaultTimeout bounds a whole request when WithTimeout is not given.
const DefaultTimeout = 30 * time.Second

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request describes one call to the backend.
type Request struct {
	// Method defaults to GET.
	Method string
	// Body, when non-nil, is sent JSON-encoded.
	Body   any
	Header http.Header
	Query  url.Values
	// Doer overrides the client's transport for this call. The session
	// cookie is still taken from and stored into the client's jar.
	Doer Doer
}

// Client talks to the backend and mirrors the session into a session.Store.
// It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	jar     http.CookieJar
	store   session.Store
	env     session.Environment
	log     logging.Logger
	timeout time.Duration
	newID   func() string
}

// Option configures a Client in New.
type Option func(*Client)

// WithStore sets the auth store the client keeps in sync.
func WithStore(s session.Store) Option {
	return func(c *Client) { c.store = s }
}

// WithEnvironment sets the execution environment. The default is
// session.Interactive.
func WithEnvironment(env session.Environment) Option {
	return func(c *Client) { c.env = env }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithHTTPClient replaces the underlying HTTP client. A copy is kept; its
// cookie jar is replaced by the client's own when unset.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		c.http = &cp
	}
}

// WithTimeout sets the overall per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:3000/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: want http(s)://host[/path]", baseURL)
	}

	c := &Client{
		baseURL: u,
		env:     session.Interactive,
		timeout: DefaultTimeout,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		c.store = session.NewMemoryStore()
	}
	if c.log == nil {
		c.log = logging.NewDiscardLogger()
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	c.jar = c.http.Jar

	return c, nil
}

// Store returns the auth store the client writes to.
func (c *Client) Store() session.Store { return c.store }

// Environment returns the execution environment the client was built for.
func (c *Client) Environment() session.Environment { return c.env }

// Call sends req to endpoint (relative to the base URL, e.g. "/users/me").
func (c *Client) Call(ctx context.Context, endpoint string, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL.String() + endpoint
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := c.newID()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(common.RequestIDHeader, requestID)
	for k, vs := range req.Header {
		httpReq.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}

	start := time.Now()
	resp, err := c.do(httpReq, req.Doer)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "endpoint", endpoint,
			"request_id", requestID, "duration", time.Since(start), "error", err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.log.Debug(ctx, "request done", "method", method, "endpoint", endpoint,
		"status", resp.StatusCode, "request_id", requestID, "duration", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && endpoint != loginEndpoint && c.env.IsInteractive() {
			c.log.Warn(ctx, "session rejected, clearing auth state", "endpoint", endpoint, "request_id", requestID)
			c.store.Clear()
		}
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: extractMessage(contentType, data, resp.StatusCode),
		}
	}

	return newResponse(resp.StatusCode, contentType, data), nil
}

func (c *Client) do(req *http.Request, override Doer) (*http.Response, error) {
	if override == nil {
		return c.http.Do(req)
	}

	for _, ck := range c.jar.Cookies(req.URL) {
		req.AddCookie(ck)
	}
	resp, err := override.Do(req)
	if err != nil {
		return nil, err
	}
	if cookies := resp.Cookies(); len(cookies) > 0 {
		c.jar.SetCookies(req.URL, cookies)
	}
	return resp, nil
}

// SessionCookie returns the value of the auth cookie held for the API
// origin, or "" when there is none.
func (c *Client) SessionCookie() string {
	for _, ck := range c.jar.Cookies(c.baseURL) {
		if ck.Name == common.AuthCookieName {
			return ck.Value
		}
	}
	return ""
}

// SetSessionCookie puts a previously saved auth cookie back into the jar.
func (c *Client) SetSessionCookie(value string) {
	c.jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:  common.AuthCookieName,
		Value: value,
		Path:  "/",
	}})
}

func (c *Client) dropSessionCookie() {
	c.jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:   common.AuthCookieName,
		Path:   "/",
		MaxAge: -1,
	}})
}
