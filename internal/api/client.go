// Package api is the HTTP client for the recommendation backend. All four
// endpoints are consumed as black boxes; payloads are plain JSON.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"recommendi/internal/domain"
)

// Client talks to the recommendation backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Categories fetches the ordered category list. The first entry is the
// default-active category.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("build categories request: %w", err)
	}

	var categories []domain.Category
	if err := c.do(req, &categories); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return categories, nil
}

// Recommendations fetches one page of results. rawQuery is the canonical
// location query string and is passed through unchanged.
func (c *Client) Recommendations(ctx context.Context, rawQuery string) (domain.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/recommendations?"+rawQuery, nil)
	if err != nil {
		return domain.FetchResult{}, fmt.Errorf("build recommendations request: %w", err)
	}

	var result domain.FetchResult
	if err := c.do(req, &result); err != nil {
		return domain.FetchResult{}, fmt.Errorf("fetch recommendations: %w", err)
	}
	return result, nil
}

// CreateSession registers a new search session and returns its backend id.
// Must complete before a message-search location is constructed.
func (c *Client) CreateSession(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return "", fmt.Errorf("marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/create_session", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if resp.SessionID == "" {
		return "", fmt.Errorf("create session: backend returned no session id")
	}
	return resp.SessionID, nil
}

// UpdateSession replicates a history entry to the backend. Callers treat
// this as best-effort; the local store remains the source of truth.
func (c *Client) UpdateSession(ctx context.Context, entry domain.HistoryEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal session update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/update_session", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build session update: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// do executes the request and decodes a JSON response into out (skipped
// when out is nil). Any non-2xx status is an error.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Read a little of the body for diagnostics
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
