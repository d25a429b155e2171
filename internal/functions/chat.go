package functions

import (
	"context"

	"larismanis/internal/domain/models"
)

type contextChatRequest struct {
	UserInput string `json:"user_input"`
}

type contextChatResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Action         string `json:"action"`
		GeminiResponse string `json:"geminiResponse"`
	} `json:"data"`
}

// GetContextChat calls the non-streaming chat function. Returns the reply
// text and the classified action intent (normalized to the closed set).
func (c *Client) GetContextChat(ctx context.Context, token, userInput string) (string, models.ActionType, error) {
	var resp contextChatResponse
	err := c.postJSON(ctx, token, "/getContextChatUser", contextChatRequest{UserInput: userInput}, &resp)
	if err != nil {
		return "", models.ActionUnknown, err
	}

	return resp.Data.GeminiResponse, models.ParseActionType(resp.Data.Action), nil
}
