package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"larismanis/internal/domain"
	"larismanis/internal/domain/models"
	"larismanis/internal/handler/sse"
	"larismanis/internal/httputil"
	"larismanis/internal/service"
)

// keepAliveInterval is how often SSE comment pings go out while a chat
// stream is open. 10 seconds stays under common proxy idle timeouts.
const keepAliveInterval = 10 * time.Second

// ChatHandler handles marketing-consultant HTTP requests
type ChatHandler struct {
	chat   *service.ChatService
	logger *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chat:   chat,
		logger: logger,
	}
}

// GetSession returns the user's conversation
// GET /api/chat/session
func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	session, err := h.chat.GetSession(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// DeleteSession clears the user's conversation
// DELETE /api/chat/session
func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	if err := h.chat.ClearSession(r.Context(), userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Consult runs one non-streaming exchange
// POST /api/chat/consult
func (h *ChatHandler) Consult(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	token := httputil.GetBearerToken(r)

	var req service.SendMessageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	assistant, err := h.chat.Consult(r.Context(), token, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, assistant)
}

// streamErrorPayload is the data of an SSE "error" event.
type streamErrorPayload struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// StreamMessage runs one streamed exchange, relayed to the client as SSE:
// "chunk" events carry text fragments in arrival order, then exactly one
// "done" event with the finalized assistant message (or one "error" event).
// Closing the connection cancels the upstream stream via the request context.
// POST /api/chat/stream
func (h *ChatHandler) StreamMessage(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	token := httputil.GetBearerToken(r)

	var req service.SendMessageRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	writer := sse.NewWriter(w, flusher)
	keepAlive := sse.NewTickerKeepAlive(keepAliveInterval)
	pingsDone := keepAlive.Start(writer, h.logger)
	// The ping goroutine must not touch the ResponseWriter after this
	// handler returns, so wait for it to exit.
	defer func() {
		keepAlive.Stop()
		<-pingsDone
	}()

	h.chat.SendMessage(r.Context(), token, userID, &req, service.StreamEvents{
		OnChunk: func(text string) {
			if err := writer.Event("chunk", map[string]string{"text": text}); err != nil {
				h.logger.Debug("client dropped during chat stream", "user_id", userID)
			}
		},
		OnComplete: func(assistant models.ChatMessage) {
			if err := writer.Event("done", assistant); err != nil {
				h.logger.Debug("client dropped before done event", "user_id", userID)
			}
		},
		OnError: func(err error) {
			payload := streamErrorPayload{Message: err.Error(), Status: http.StatusInternalServerError}
			var httpErr domain.HTTPError
			switch {
			case errors.Is(err, domain.ErrAuthRequired):
				payload.Status = http.StatusUnauthorized
			case errors.As(err, &httpErr):
				payload.Status = httpErr.StatusCode()
			}
			if werr := writer.Event("error", payload); werr != nil {
				h.logger.Debug("client dropped before error event", "user_id", userID)
			}
		},
	})
}
