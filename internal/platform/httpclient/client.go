package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cametumbling/scrapey/internal/tracer"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second
	// DefaultMaxBodySize is the default maximum response body size (2MB)
	DefaultMaxBodySize = 2 * 1024 * 1024
	// DefaultUserAgent is the default User-Agent header
	DefaultUserAgent = "scrapey/1.0"
)

// Client is an HTTP client with timeout and body size limits. It implements
// tracer.Fetcher (C1) and is safe for concurrent use by multiple goroutines
// — the engine shares one Client across every worker.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	maxBodySize int64
}

// Config contains configuration options for the HTTP client.
type Config struct {
	// Timeout is the total request timeout (default: 10s)
	Timeout time.Duration
	// UserAgent is the User-Agent header to send (default: "scrapey/1.0")
	UserAgent string
	// MaxBodySize is the maximum response body size in bytes (default: 2MB)
	MaxBodySize int64
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent:   cfg.UserAgent,
		maxBodySize: cfg.MaxBodySize,
	}
}

// Fetch retrieves url and returns its body as text, or a classified
// ErrorKind. A non-2xx status and a transport-level failure both resolve
// to a *tracer.RequestError; a body read failure resolves to a
// *tracer.ContentError. There is no rate limiting or retry here — those
// are the trace engine's job (C6), not the fetcher's.
func (c *Client) Fetch(ctx context.Context, url string) (string, tracer.ErrorKind) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &tracer.RequestError{Code: 0}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &tracer.RequestError{Code: 0}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &tracer.RequestError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return "", &tracer.ContentError{Message: err.Error()}
	}

	return string(body), nil
}
