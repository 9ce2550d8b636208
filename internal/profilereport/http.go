package profilereport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// HTTPClient wraps http.Client for the report's JSON calls.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// checkHealth verifies the service answers /healthz.
func (c *HTTPClient) checkHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

// preview posts p to /preview/matches.
func (c *HTTPClient) preview(ctx context.Context, p Profile) (Page, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Page{}, fmt.Errorf("failed to marshal profile: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/preview/matches", bytes.NewReader(body))
	if err != nil {
		return Page{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("preview %q: %w", p.Name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, fmt.Errorf("read preview %q: %w", p.Name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("preview %q returned status %d: %s", p.Name, resp.StatusCode, bytes.TrimSpace(data))
	}

	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return Page{}, fmt.Errorf("decode preview %q: %w", p.Name, err)
	}
	return page, nil
}
