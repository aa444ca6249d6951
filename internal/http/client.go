package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"
)

// Common errors.
var (
	ErrNotFound     = errors.New("http: resource not found")
	ErrForbidden    = errors.New("http: access forbidden")
	ErrUnauthorized = errors.New("http: unauthorized")
	ErrServerError  = errors.New("http: server error")
)

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "NoNG-Manager/1.0"

// Options configures the HTTP client.
type Options struct {
	// Timeout for individual requests, including reading the body.
	// Default: 5m
	Timeout time.Duration

	// RetryAttempts is the maximum number of retry attempts.
	// Default: 2
	RetryAttempts int

	// RetryBackoff is the initial backoff duration.
	// Default: 500ms
	RetryBackoff time.Duration

	// RetryMaxBackoff is the maximum backoff duration.
	// Default: 5s
	RetryMaxBackoff time.Duration

	// UserAgent overrides DefaultUserAgent when set.
	UserAgent string
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Timeout:         5 * time.Minute,
		RetryAttempts:   2,
		RetryBackoff:    500 * time.Millisecond,
		RetryMaxBackoff: 5 * time.Second,
		UserAgent:       DefaultUserAgent,
	}
}

// Response is a successful GET response. Callers must close Body.
type Response struct {
	Body          io.ReadCloser
	ContentLength int64
	ContentType   string
}

// Client is a small retrying HTTP GET client.
type Client struct {
	client *http.Client
	opts   Options
}

// NewClient creates a new HTTP client with the given options.
func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		opts: opts,
	}
}

// Get performs a GET request, retrying on transport errors and 5xx responses.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.opts.RetryAttempts; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying GET %s, attempt %d: %v", url, attempt+1, lastErr)
			if err := c.backoff(ctx, attempt); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("%w: %d %s", ErrServerError, resp.StatusCode, resp.Status)
			continue
		}

		if err := checkStatusCode(resp.StatusCode); err != nil {
			resp.Body.Close()
			return nil, err
		}

		return &Response{
			Body:          resp.Body,
			ContentLength: resp.ContentLength,
			ContentType:   resp.Header.Get("Content-Type"),
		}, nil
	}

	return nil, fmt.Errorf("get request failed after %d attempts: %w", c.opts.RetryAttempts+1, lastErr)
}

// backoff waits for an exponentially increasing duration with jitter.
func (c *Client) backoff(ctx context.Context, attempt int) error {
	backoff := c.opts.RetryBackoff * time.Duration(1<<uint(attempt-1))
	if backoff > c.opts.RetryMaxBackoff {
		backoff = c.opts.RetryMaxBackoff
	}

	// Add jitter: 0.5 to 1.5 of backoff
	jitter := time.Duration(float64(backoff) * (0.5 + rand.Float64()))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(jitter):
		return nil
	}
}

// checkStatusCode returns an appropriate error for non-success status codes.
func checkStatusCode(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("unexpected status code: %d", code)
	}
}
