// Package mlb provides the shared retrying HTTP client used by every
// tool. It is the only network egress point in the system.
package mlb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/dugout-ai/dugout/internal/types"
)

// RetryPolicy controls automatic retries for outbound calls. The policy
// is applied uniformly: a response whose status is in RetryStatuses is
// retried with exponential backoff up to MaxAttempts total attempts.
type RetryPolicy struct {
	MaxAttempts   int
	BackoffFactor time.Duration
	RetryStatuses []int
}

// DefaultRetryPolicy reproduces the reference policy: 3 total attempts,
// 1s backoff factor, retry on server-side transient statuses.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   3,
		BackoffFactor: time.Second,
		RetryStatuses: []int{
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

// Delay returns the backoff before resending attempt+1:
// BackoffFactor * 2^(attempt-1) for attempt >= 1.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	return time.Duration(float64(p.BackoffFactor) * math.Pow(2, float64(attempt-1)))
}

// Retryable reports whether status is eligible for automatic retry.
func (p RetryPolicy) Retryable(status int) bool {
	for _, s := range p.RetryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Client is the shared retrying HTTP client. One instance is constructed
// at startup and used concurrently by every tool invocation; it holds no
// per-call state.
type Client struct {
	http   *http.Client
	policy RetryPolicy
	logger *slog.Logger
}

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Used by tests to
// point the client at httptest servers with short timeouts.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger configures the client's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient creates a Client with the given retry policy.
func NewClient(policy RetryPolicy, opts ...Option) *Client {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	c := &Client{
		http:   &http.Client{Timeout: 30 * time.Second},
		policy: policy,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON issues a GET to url and returns the decoded JSON body.
//
// Transport failures and retry-eligible statuses are retried with
// exponential backoff up to the policy's attempt ceiling; the retries are
// not visible to the caller. Any other error status surfaces immediately
// without retry. All failures are reported as NETWORK_FAILED; exhausted
// retries and transport errors are marked retryable.
func (c *Client) GetJSON(ctx context.Context, url string) (any, error) {
	var lastErr error

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		body, status, err := c.get(ctx, url)
		switch {
		case err != nil:
			lastErr = types.WrapRetryableError(types.NETWORK_FAILED,
				fmt.Sprintf("request to %s failed", url), err)

		case status >= 200 && status < 300:
			var decoded any
			if jerr := json.Unmarshal(body, &decoded); jerr != nil {
				return nil, types.WrapError(types.NETWORK_FAILED,
					fmt.Sprintf("response from %s is not valid JSON", url), jerr)
			}
			return decoded, nil

		case c.policy.Retryable(status):
			lastErr = types.NewRetryableError(types.NETWORK_FAILED,
				fmt.Sprintf("upstream returned status %d for %s", status, url))

		default:
			// Non-retry-eligible error status surfaces immediately.
			return nil, types.NewError(types.NETWORK_FAILED,
				fmt.Sprintf("upstream returned status %d for %s", status, url))
		}

		if attempt < c.policy.MaxAttempts {
			delay := c.policy.Delay(attempt)
			c.logger.Warn("retrying upstream call",
				"url", url, "attempt", attempt, "delay", delay, "error", lastErr)
			if err := sleepContext(ctx, delay); err != nil {
				return nil, types.WrapError(types.NETWORK_FAILED, "request cancelled during backoff", err)
			}
		}
	}

	return nil, lastErr
}

// get performs a single HTTP GET attempt and drains the body.
func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// sleepContext sleeps for d unless ctx is cancelled first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
