// Package advice provides a client for the chat-completion API that turns a
// financial profile into written advice.
package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the OpenAI-compatible endpoint used when none is configured.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel is the model identifier used when none is configured.
	DefaultModel = "openai/gpt-oss-20b:free"

	maxBodySize = 1 << 20 // 1 MB
	userAgent   = "github.com/theirongolddev/finplan/1.0"
)

var (
	// ErrMissingCredential indicates no API key was configured.
	ErrMissingCredential = errors.New("advice: API key is not configured (set OPENAI_API_KEY)")
	// ErrUnauthorized indicates the API key was rejected.
	ErrUnauthorized = errors.New("advice: unauthorized (API key invalid or revoked)")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("advice: rate limited")
)

// UpstreamError is a non-success response from the completion API. Body is
// the upstream response body as received.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("advice: upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("advice: upstream status %d: %s", e.StatusCode, e.Body)
}

// Is matches ErrUnauthorized for 401/403 and ErrRateLimited for 429.
func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	// Rules is the system instruction sent ahead of every profile.
	Rules string
	// Fallback is returned as the advice when the response carries no text.
	Fallback string
	// Timeout bounds a single request. Zero means no limit.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client sends profiles to the completion API.
type Client struct {
	opts Options
	http *http.Client
}

// NewClient creates a client. Defaults fill an empty base URL and model.
func NewClient(opts Options) *Client {
	opts.APIKey = strings.TrimSpace(opts.APIKey)
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{opts: opts, http: hc}
}

// Model returns the model identifier requests are sent with.
func (c *Client) Model() string { return c.opts.Model }

// Advise sends profileJSON as the user message and returns the advice text.
func (c *Client) Advise(ctx context.Context, profileJSON []byte) (string, error) {
	if c.opts.APIKey == "" {
		return "", ErrMissingCredential
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, profileJSON); err != nil {
		return "", fmt.Errorf("advice: invalid profile JSON: %w", err)
	}

	reqBody, err := json.Marshal(CompletionRequest{
		Model: c.opts.Model,
		Messages: []Message{
			{Role: "system", Content: c.opts.Rules},
			{Role: "user", Content: compact.String()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("advice: encoding request: %w", err)
	}

	body, err := c.post(ctx, "/chat/completions", reqBody)
	if err != nil {
		return "", err
	}

	var resp CompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("advice: parsing response: %w", err)
	}

	if text := resp.Text(); text != "" {
		return text, nil
	}
	return c.opts.Fallback, nil
}

// post performs an authenticated JSON POST and returns the response body.
func (c *Client) post(ctx context.Context, path string, payload []byte) ([]byte, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("advice: creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("advice: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("advice: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
