package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"larismanis/internal/domain"
	"larismanis/internal/domain/models"
)

type marketingResponse struct {
	Success bool                    `json:"success"`
	Data    models.MarketingContent `json:"data"`
}

// GenerateMarketingContent uploads a product photo with style prompts and
// returns the generated poster URL, caption, and description. The image goes
// as a multipart form, not JSON.
func (c *Client) GenerateMarketingContent(ctx context.Context, token string, image io.Reader, filename, imageStylePrompt, captionStylePrompt string) (*models.MarketingContent, error) {
	if token == "" {
		return nil, domain.ErrAuthRequired
	}

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("copy image: %w", err)
	}
	if err := writer.WriteField("imageStylePrompt", imageStylePrompt); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if err := writer.WriteField("captionStylePrompt", captionStylePrompt); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generateMarketingContent", &form)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call generateMarketingContent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, upstreamError(resp)
	}

	var decoded marketingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode generateMarketingContent response: %w", err)
	}
	if !decoded.Success {
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Message: "invalid response format"}
	}

	return &decoded.Data, nil
}
