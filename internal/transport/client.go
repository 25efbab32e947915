// Package transport provides the HTTP client used by data sources. Both
// upstream feeds are public static JSON, so there is no authentication;
// the client adds a timeout, a small bounded retry for transient failures,
// and an optional payload cache consulted before the network.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/siamvotes/votemerge/pkg/errors"
	"github.com/siamvotes/votemerge/pkg/logging"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 30 * time.Second

// DefaultRetries is how many times a failed request is retried.
const DefaultRetries = 2

// retryBaseDelay is the delay before the first retry; doubled each attempt.
const retryBaseDelay = 500 * time.Millisecond

// Cache stores fetched payloads keyed by URL so repeated runs can replay
// data without hitting the sources.
type Cache interface {
	Get(url string) ([]byte, bool)
	Put(url string, body []byte) error
}

// Client fetches JSON payloads over HTTP.
type Client struct {
	http    *http.Client
	retries int
	cache   Cache
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRetries sets how many times failed requests are retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithCache attaches a payload cache consulted before the network.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithHTTPClient replaces the underlying http.Client. Used by tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a transport client.
func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		retries: DefaultRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON fetches url and decodes the response body into v. The cache, when
// configured, is consulted first and populated on success.
func (c *Client) GetJSON(ctx context.Context, source, url string, v any) error {
	if c.cache != nil {
		if body, ok := c.cache.Get(url); ok {
			logging.Ctx(ctx).Debug().Str("url", url).Msg("Cache hit")
			return decodeJSON(source, url, body, v)
		}
	}

	body, err := c.get(ctx, source, url)
	if err != nil {
		return err
	}

	if c.cache != nil {
		if err := c.cache.Put(url, body); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("url", url).Msg("Failed to cache payload")
		}
	}

	return decodeJSON(source, url, body, v)
}

// get performs the request with bounded retry on transient failures.
func (c *Client) get(ctx context.Context, source, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			logging.Ctx(ctx).Debug().
				Str("url", url).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("Retrying request")
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", errors.ErrCanceled, ctx.Err())
			case <-time.After(delay):
			}
		}

		body, err := c.do(ctx, source, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, source, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapSource(source, url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapSource(source, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.APIError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
			Endpoint:   url,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapSource(source, url, err)
	}
	return body, nil
}

// retryable reports whether an error is worth another attempt: network
// failures and 5xx responses are; 4xx responses are not.
func retryable(err error) bool {
	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true
}

func decodeJSON(source, url string, body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return errors.WrapParse("json", url, fmt.Errorf("%s: %w", source, err))
	}
	return nil
}
