package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/iss-position-etl/internal/domain"
)

// Client reads public user activity from the GitHub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a GitHub client rooted at baseURL (e.g. https://api.github.com).
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// UserEventsURL returns the public events endpoint for user.
func (c *Client) UserEventsURL(user string) string {
	return fmt.Sprintf("%s/users/%s/events", c.baseURL, url.PathEscape(user))
}

// UserEvents returns the most recent public events of user, newest first.
func (c *Client) UserEvents(ctx context.Context, user string) ([]domain.GitHubEvent, error) {
	u := c.UserEventsURL(user)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("events request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &domain.HTTPStatusError{URL: u, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var events []domain.GitHubEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	c.logger.Debug("events received", "user", user, "count", len(events))
	return events, nil
}
