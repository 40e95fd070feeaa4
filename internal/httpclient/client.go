package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent is a browser-like identification string; several news sites
// reject obvious bot agents outright.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// maxBodyBytes caps how much of a page or feed is read into memory.
const maxBodyBytes = 8 << 20

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// IsStatus reports whether err is a StatusError.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// Client provides a configurable HTTP client with a fixed identifying header
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// New creates a new HTTP client with the specified timeout and user agent
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// NewWithTransport creates a new HTTP client with custom transport
func NewWithTransport(timeout time.Duration, userAgent string, transport http.RoundTripper) *Client {
	c := New(timeout, userAgent)
	c.httpClient.Transport = transport
	return c
}

// Get performs a GET request carrying the client's User-Agent.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.httpClient.Do(req)
}

// Fetch performs a GET and returns the body of a 200 response. Any other
// status yields a *StatusError.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}
