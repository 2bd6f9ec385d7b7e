// Package catalog fetches the earthquake catalog feed and keeps a GeoJSON
// snapshot fresh for the map UI.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-alert-service/internal/domain"
)

// Client fetches the catalog JSON document over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog client for the given feed URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch retrieves and decodes the catalog feed.
func (c *Client) Fetch(ctx context.Context) (domain.CatalogFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.CatalogFeed{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.CatalogFeed{}, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.CatalogFeed{}, fmt.Errorf("catalog API error: status %d: %s", resp.StatusCode, body)
	}

	var feed domain.CatalogFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return domain.CatalogFeed{}, fmt.Errorf("decode catalog feed: %w", err)
	}
	return feed, nil
}
