package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"larismanis/internal/domain"
	"larismanis/internal/domain/models"
)

// ActionIntentHeader carries the server-classified follow-up intent. It is
// not part of the streamed body and is captured before the stream is consumed.
const ActionIntentHeader = "X-Action-Intent"

// Callbacks for one streaming chat call.
type (
	// ChunkFunc receives each decoded text fragment, in arrival order,
	// synchronously with the read loop.
	ChunkFunc func(text string)

	// CompleteFunc receives the accumulated full text and the classified
	// action intent once the transport signals end-of-stream.
	CompleteFunc func(fullText string, intent models.ActionType)

	// ErrorFunc receives any failure from request issue through stream end.
	ErrorFunc func(err error)
)

type chatStreamRequest struct {
	UserInput string `json:"user_input"`
}

// StreamChat issues one authenticated POST to the chat-stream function and
// consumes the response body incrementally. All results are delivered via
// callbacks; there is no return value.
//
// Exactly one of onComplete or onError fires, at most once, unless ctx is
// cancelled first: on cancellation the read loop stops invoking callbacks
// altogether and releases the body. Partial content already delivered via
// onChunk is the caller's to keep; nothing is rolled back.
func (c *Client) StreamChat(ctx context.Context, token, userInput string, onChunk ChunkFunc, onComplete CompleteFunc, onError ErrorFunc) {
	// Credential check happens before any network call.
	if token == "" {
		onError(domain.ErrAuthRequired)
		return
	}

	payload, err := json.Marshal(chatStreamRequest{UserInput: userInput})
	if err != nil {
		onError(fmt.Errorf("encode request: %w", err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generateChatStream", bytes.NewReader(payload))
	if err != nil {
		onError(fmt.Errorf("build request: %w", err))
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			c.logger.Debug("chat stream cancelled before response", "error", err)
			return
		}
		onError(fmt.Errorf("start stream: %w", err))
		return
	}
	defer resp.Body.Close()

	// The body is never streamed on error statuses.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		onError(upstreamError(resp))
		return
	}

	// Captured from the header before the body is consumed; absent or
	// unrecognized values normalize to unknown.
	intent := models.ParseActionType(resp.Header.Get(ActionIntentHeader))

	var (
		decoder streamDecoder
		full    strings.Builder
		buf     = make([]byte, 4096)
	)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if text := decoder.Write(buf[:n]); text != "" {
				full.WriteString(text)
				onChunk(text)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if tail := decoder.Flush(); tail != "" {
					full.WriteString(tail)
					onChunk(tail)
				}
				onComplete(full.String(), intent)
				return
			}
			if ctx.Err() != nil {
				c.logger.Debug("chat stream cancelled mid-read",
					"received_bytes", full.Len(),
				)
				return
			}
			onError(fmt.Errorf("read stream: %w", err))
			return
		}
	}
}
