package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a single HexoDB shard. Its configuration is fixed at
// construction, and it is safe for concurrent use.
//
// The client performs no retries: a failed request is returned to the caller
// as a *ShardError.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	headers    http.Header
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests. Timeouts, TLS
// and proxies are configured on it.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithHeaders adds headers sent with every request.
func WithHeaders(h http.Header) Option {
	return func(c *Client) {
		for k, values := range h {
			for _, v := range values {
				c.headers.Add(k, v)
			}
		}
	}
}

// WithLogger sets the logger used for request debug logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the clock used by Ping.
func WithClock(fn func() time.Time) Option {
	return func(c *Client) {
		if fn != nil {
			c.now = fn
		}
	}
}

// New returns a Client for the shard at shardURL.
func New(shardURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(shardURL) == "" {
		return nil, errors.New("shard URL is required")
	}

	u, err := url.Parse(shardURL)
	if err != nil {
		return nil, fmt.Errorf("invalid shard URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid shard URL '%s': expected an http or https URL", shardURL)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		headers:    make(http.Header),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the shard URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Set stores value under key and returns the shard's confirmation.
// Numbers are sent in canonical decimal form, see NormalizeValue.
func (c *Client) Set(ctx context.Context, key string, value any) (Confirmation, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	wire, err := NormalizeValue(value)
	if err != nil {
		return "", err
	}

	body, err := c.do(ctx, OpSet, key, &wire)
	if err != nil {
		return "", err
	}
	return interpretConfirmation(OpSet, body)
}

// Write is an alias of Set.
func (c *Client) Write(ctx context.Context, key string, value any) (Confirmation, error) {
	return c.Set(ctx, key, value)
}

// Delete removes key from the shard.
func (c *Client) Delete(ctx context.Context, key string) (Confirmation, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}

	body, err := c.do(ctx, OpDelete, key, nil)
	if err != nil {
		return "", err
	}
	return interpretConfirmation(OpDelete, body)
}

// Fetch returns the value stored under key. A key without a value yields
// the absent Value and a nil error.
func (c *Client) Fetch(ctx context.Context, key string) (Value, error) {
	if err := ValidateKey(key); err != nil {
		return Value{}, err
	}

	body, err := c.do(ctx, OpFetch, key, nil)
	if err != nil {
		return Value{}, err
	}
	return interpretValue(OpFetch, body)
}

// Get is an alias of Fetch.
func (c *Client) Get(ctx context.Context, key string) (Value, error) {
	return c.Fetch(ctx, key)
}

// Exists reports whether the shard holds a value for key. Stored falsy
// values (0, "", false) exist.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	v, err := c.Fetch(ctx, key)
	if err != nil {
		return false, err
	}
	return v.Exists(), nil
}

// Has is an alias of Exists.
func (c *Client) Has(ctx context.Context, key string) (bool, error) {
	return c.Exists(ctx, key)
}

// All returns a snapshot of every entry in the shard.
func (c *Client) All(ctx context.Context) ([]Entry, error) {
	body, err := c.do(ctx, OpFetchAll, "", nil)
	if err != nil {
		return nil, err
	}
	return interpretSnapshot(OpFetchAll, body)
}

// GetAs fetches key and decodes its value into T. ok is false if no value is
// stored.
func GetAs[T any](ctx context.Context, c *Client, key string) (value T, ok bool, err error) {
	v, err := c.Fetch(ctx, key)
	if err != nil || !v.Exists() {
		return value, false, err
	}
	if err := v.Decode(&value); err != nil {
		return value, false, err
	}
	return value, true, nil
}

// do sends the request for op and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op Operation, key string, value *string) ([]byte, error) {
	target := BuildTarget(c.baseURL, op, key, value)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &ShardError{Op: op, URL: target, Err: err}
	}
	for k, values := range c.headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ShardError{Op: op, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ShardError{
			Op: op, URL: target, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("failed reading response body: %w", err),
		}
	}

	c.logger.Debug("shard request",
		"op", op, "path", req.URL.Path,
		"query_len", len(req.URL.RawQuery),
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ShardError{Op: op, URL: target, StatusCode: resp.StatusCode, Body: body}
	}

	return body, nil
}
