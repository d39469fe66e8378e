// Package orderstatus reads order preparation statuses from the external
// fulfillment endpoint, with retries, caching and per-request batching.
package orderstatus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopdash/backend/internal/domain/trade"
	"github.com/shopdash/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no status endpoint is configured
var ErrNotConfigured = errors.New("order status api url is not configured")

// StatusError is a non-2xx response from the status endpoint
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("order status api returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Temporary reports whether retrying may succeed
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Client calls GET <api_url>?orderId=<id>
type Client struct {
	httpClient *http.Client
	apiURL     string
	timeout    time.Duration
	maxRetries int
	maxBytes   int64
	logger     *zap.Logger

	// initialInterval is the first backoff delay; tests shorten it
	initialInterval time.Duration
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClientLogger sets the client logger
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithInitialBackoff sets the delay before the first retry
func WithInitialBackoff(d time.Duration) ClientOption {
	return func(c *Client) {
		c.initialInterval = d
	}
}

// NewClient creates a status client from configuration
func NewClient(cfg config.OrderStatusConfig, opts ...ClientOption) *Client {
	c := &Client{
		httpClient:      http.DefaultClient,
		apiURL:          cfg.APIURL,
		timeout:         cfg.Timeout,
		maxRetries:      cfg.MaxRetries,
		maxBytes:        cfg.MaxResponseBytes,
		logger:          zap.NewNop(),
		initialInterval: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxBytes <= 0 {
		c.maxBytes = 64 << 10
	}
	return c
}

// GetPrepStatus fetches the status of one order. Transport errors, 5xx and
// 429 responses are retried up to the configured count; other errors are final.
func (c *Client) GetPrepStatus(ctx context.Context, orderID string) (trade.PrepStatus, error) {
	if c.apiURL == "" {
		return trade.PrepStatus{}, ErrNotConfigured
	}

	var result trade.PrepStatus
	attempt := 0
	operation := func() error {
		attempt++
		status, err := c.fetchOnce(ctx, orderID)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && !statusErr.Temporary() {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			c.logger.Debug("Order status fetch failed",
				zap.String("order_id", orderID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		result = status
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialInterval
	policy.MaxElapsedTime = 0

	retries := c.maxRetries
	if retries < 0 {
		retries = 0
	}
	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(retries)), ctx))
	if err != nil {
		return trade.PrepStatus{}, err
	}
	return result, nil
}

func (c *Client) fetchOnce(ctx context.Context, orderID string) (trade.PrepStatus, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint, err := url.Parse(c.apiURL)
	if err != nil {
		return trade.PrepStatus{}, backoff.Permanent(fmt.Errorf("invalid order status api url: %w", err))
	}
	query := endpoint.Query()
	query.Set("orderId", orderID)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return trade.PrepStatus{}, fmt.Errorf("build order status request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return trade.PrepStatus{}, fmt.Errorf("order status request: %w", err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, c.maxBytes)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, body)
		return trade.PrepStatus{}, &StatusError{StatusCode: resp.StatusCode}
	}

	var status trade.PrepStatus
	if err := json.NewDecoder(body).Decode(&status); err != nil {
		return trade.PrepStatus{}, backoff.Permanent(fmt.Errorf("decode order status response: %w", err))
	}
	return status, nil
}

var _ trade.PrepStatusReader = (*Client)(nil)
