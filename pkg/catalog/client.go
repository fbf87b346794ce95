package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Client reads the storefront's catalog API. The API is an external
// collaborator: three flat-record partitions behind GET endpoints.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *log.Logger
}

func NewClient(baseURL string, logger *log.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// FetchSnapshot loads all three partitions. A failed partition is logged
// and omitted rather than failing the whole snapshot, so one unavailable
// backend table never takes the assistant's knowledge offline.
func (c *Client) FetchSnapshot(ctx context.Context) Snapshot {
	var snap Snapshot

	menu, err := c.fetchPartition(ctx, "/api/menu")
	if err != nil {
		c.logger.Printf("[CATALOG] menu partition unavailable: %v", err)
	} else {
		snap.MenuItems = menu
	}

	art, err := c.fetchPartition(ctx, "/api/art")
	if err != nil {
		c.logger.Printf("[CATALOG] art partition unavailable: %v", err)
	} else {
		snap.ArtPieces = art
	}

	workshops, err := c.fetchPartition(ctx, "/api/workshops")
	if err != nil {
		c.logger.Printf("[CATALOG] workshops partition unavailable: %v", err)
	} else {
		snap.Workshops = workshops
	}

	return snap
}

func (c *Client) fetchPartition(ctx context.Context, path string) ([]Item, error) {
	url := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var items []Item
	if err := json.Unmarshal(bodyBytes, &items); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return items, nil
}
