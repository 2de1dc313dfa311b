package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the remote GEM backend, which owns escrow, AI listing
// generation, and platform-wide stats. Timeouts are per endpoint: stats is
// a cheap dashboard read, listing generation waits on an AI model.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

const (
	statsTimeout    = 3 * time.Second
	uploadTimeout   = 30 * time.Second
	generateTimeout = 60 * time.Second
	exchangeTimeout = 10 * time.Second
)

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{},
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

func (c *Client) postJSON(ctx context.Context, path string, payload json.RawMessage, timeout time.Duration) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return body, nil
}

// GenerateListing forwards the draft listing to the backend AI endpoint.
func (c *Client) GenerateListing(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return c.postJSON(ctx, "/v1/listings/generate", payload, generateTimeout)
}

// PlatformStats reads the aggregate marketplace stats.
func (c *Client) PlatformStats(ctx context.Context) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, statsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/platform/stats", nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return body, nil
}

// Upload forwards a multipart body untouched. The incoming Content-Type
// header is passed through verbatim so the multipart boundary survives.
func (c *Client) Upload(ctx context.Context, contentType string, body io.Reader) (json.RawMessage, int, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/uploads", body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", contentType)
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return respBody, resp.StatusCode, nil
}

// ExchangeCode trades an OAuth authorization code for platform identity
// data via the backend, which holds the app secret.
func (c *Client) ExchangeCode(ctx context.Context, platform, code string) (map[string]string, []string, time.Time, error) {
	payload, _ := json.Marshal(map[string]string{
		"platform": platform,
		"code":     code,
	})

	body, err := c.postJSON(ctx, "/v1/oauth/exchange", payload, exchangeTimeout)
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	var out struct {
		UserInfo  map[string]string `json:"user_info"`
		Pages     []string          `json:"pages"`
		ExpiresAt time.Time         `json:"expires_at"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("failed to decode exchange response: %w", err)
	}
	return out.UserInfo, out.Pages, out.ExpiresAt, nil
}
