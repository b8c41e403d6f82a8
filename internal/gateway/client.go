package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/theirongolddev/finplan/internal/profile"
)

// DefaultURL is the gateway endpoint used when none is configured.
const DefaultURL = "http://" + defaultAddr + DefaultPath

// ErrAdviceFailed reports a non-success answer from the gateway.
var ErrAdviceFailed = errors.New("AI API error")

// Client posts profiles to a running gateway.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a gateway client for url. A nil hc uses a default client.
func NewClient(url string, hc *http.Client) *Client {
	if url == "" {
		url = DefaultURL
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{url: url, http: hc}
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string { return c.url }

// RequestAdvice sends p to the gateway and returns the advice it answers with.
func (c *Client) RequestAdvice(ctx context.Context, p profile.Profile) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("gateway: encoding profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gateway: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRequestBody))
	if err != nil {
		return "", fmt.Errorf("gateway: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e errorResponse
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrAdviceFailed, e.Error)
		}
		return "", fmt.Errorf("%w: status %d", ErrAdviceFailed, resp.StatusCode)
	}

	var out adviceResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("gateway: parsing response: %w", err)
	}
	return strings.TrimSpace(out.Advice), nil
}
