// Package functions is the HTTP client for the LarisManis serverless
// functions (chat streaming, content planning, marketing-content generation).
// The functions are opaque external collaborators; this package owns request
// shaping, authentication forwarding, and response decoding only.
package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"larismanis/internal/domain"
)

// Client calls the serverless functions on behalf of an authenticated user.
// Every call forwards the user's own bearer token; the client holds no
// credential of its own.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a functions client for the given base URL (typically
// {SUPABASE_URL}/functions/v1). No client-level timeout is set: chat streams
// are long-lived, and non-streaming calls bound themselves via context.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// postJSON issues one authenticated POST and decodes the JSON response into
// out. A non-2xx status becomes an UpstreamError carrying the body's "error"
// field when present.
func (c *Client) postJSON(ctx context.Context, token, path string, body, out interface{}) error {
	if token == "" {
		return domain.ErrAuthRequired
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return upstreamError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// upstreamError reads an error response body and extracts the server-supplied
// message when one exists.
func upstreamError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &body)

	return &domain.UpstreamError{
		Status:  resp.StatusCode,
		Message: body.Error,
	}
}
