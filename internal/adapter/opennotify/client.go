package opennotify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/iss-position-etl/internal/domain"
)

// maxErrorBody bounds how much of a non-2xx body ends up in the error.
const maxErrorBody = 512

// Client fetches the current ISS position from the Open Notify API.
// It implements pipeline.PositionSource.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for endpoint. A zero timeout leaves the
// request unbounded, as net/http does by default.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Endpoint returns the URL every Fetch requests.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch performs one GET against the endpoint and returns the response body.
// A non-2xx status is reported as *domain.HTTPStatusError; every other error
// is a transport failure.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	c.logger.Info("getting data", "url", c.endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("position request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.HTTPStatusError{
			URL:        c.endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read position response: %w", err)
	}

	c.logger.Debug("position response received", "status", resp.StatusCode, "bytes", len(body))
	return body, nil
}
