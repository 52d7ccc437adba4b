// Package client provides the HTTP client shared by all version sources,
// with exponential-backoff retries, DNS caching, and per-host circuit
// breaking.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/cenk/backoff"
	"github.com/rs/dnscache"
)

// ErrUpstreamDown is returned when a source host's circuit breaker is open.
var ErrUpstreamDown = errors.New("upstream source unavailable")

// HTTPError represents a non-2xx HTTP response.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// IsNotFound returns true if the error represents a 404 response.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == 404
}

// RateLimitError is returned when a source rate limits requests.
type RateLimitError struct {
	RetryAfter int // seconds
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %d seconds", e.RetryAfter)
}

// Client is an HTTP client for version-source APIs.
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxRetries int
	baseDelay  time.Duration
	breakers   *breakerSet
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.httpClient.Timeout = d
	}
}

// WithMaxRetries sets the maximum number of retries for retryable
// responses (429 and 5xx). Zero disables retries entirely.
func WithMaxRetries(n int) Option {
	return func(cl *Client) {
		cl.maxRetries = n
	}
}

// WithBaseDelay sets the base delay for exponential backoff between
// retries.
func WithBaseDelay(d time.Duration) Option {
	return func(cl *Client) {
		cl.baseDelay = d
	}
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: newTransport(),
		},
		userAgent:  "repin",
		maxRetries: 5,
		baseDelay:  500 * time.Millisecond,
		breakers:   newBreakerSet(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 5 retries with exponential backoff
// - Retry on 429 and 5xx responses
func DefaultClient() *Client {
	return NewClient()
}

// WithUserAgent returns a copy of the client using the given User-Agent.
func (c *Client) WithUserAgent(ua string) *Client {
	clone := *c
	clone.userAgent = ua
	return &clone
}

// newTransport builds a pooled transport whose dialer resolves hosts
// through a shared DNS cache refreshed every 5 minutes.
func newTransport() *http.Transport {
	resolver := &dnscache.Resolver{}
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			resolver.Refresh(true)
		}
	}()

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ips, err := resolver.LookupHost(ctx, host)
			if err != nil {
				return nil, err
			}
			for _, ip := range ips {
				conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
				if err == nil {
					return conn, nil
				}
			}
			return nil, fmt.Errorf("failed to dial any resolved IP for %s", host)
		},
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// GetJSON fetches url and decodes the response body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.GetBody(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// GetBody fetches url and returns the raw response body, retrying
// retryable failures up to the configured limit.
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	if c.maxRetries <= 0 {
		return c.doGet(ctx, url)
	}

	var body []byte

	op := func() error {
		b, err := c.doGet(ctx, url)
		if err != nil {
			if retryable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		body = b
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.baseDelay

	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.maxRetries)), ctx))
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Head issues a HEAD request and returns the response status code.
func (c *Client) Head(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("head request: %w", err)
	}
	_ = resp.Body.Close()

	return resp.StatusCode, nil
}

func (c *Client) doGet(ctx context.Context, url string) ([]byte, error) {
	breaker := c.breakers.get(hostOf(url))
	if !breaker.Ready() {
		return nil, fmt.Errorf("circuit breaker open for %s: %w", hostOf(url), ErrUpstreamDown)
	}

	var body []byte
	err := breaker.Call(func() error {
		var callErr error
		body, callErr = c.get(ctx, url)
		return callErr
	}, 0)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading response from %s: %w", url, err)
		}
		return body, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := 0
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if n, err := strconv.Atoi(ra); err == nil {
				retryAfter = n
			}
		}
		return nil, &RateLimitError{RetryAfter: retryAfter}

	default:
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Body:       string(excerpt),
		}
	}
}

// retryable reports whether an error warrants another attempt: rate
// limiting and server-side failures do, everything else is permanent.
func retryable(err error) bool {
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	return false
}
