package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"larismanis/internal/domain"
	"larismanis/internal/domain/models"
	"larismanis/internal/domain/repositories"
	"larismanis/internal/functions"
)

// ChatService owns the marketing-consultant conversation: the singleton
// per-user session, the streaming exchange with the chat function, and the
// follow-up action attached to each reply.
type ChatService struct {
	sessions repositories.SessionRepository
	client   *functions.Client
	logger   *slog.Logger
}

// NewChatService creates a new chat service
func NewChatService(sessions repositories.SessionRepository, client *functions.Client, logger *slog.Logger) *ChatService {
	return &ChatService{
		sessions: sessions,
		client:   client,
		logger:   logger,
	}
}

// SendMessageRequest carries one user chat message.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// Validate implements request validation
func (r *SendMessageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 4000)),
	)
}

// StreamEvents are the delivery callbacks for one streamed exchange.
// OnChunk fires once per decoded fragment in arrival order; exactly one of
// OnComplete or OnError then fires, unless the context is cancelled first,
// in which case the exchange simply stops.
type StreamEvents struct {
	OnChunk    func(text string)
	OnComplete func(assistant models.ChatMessage)
	OnError    func(err error)
}

// SendMessage runs one streamed exchange. The user message and an empty
// assistant placeholder are appended to the session snapshot up front; every
// later update replaces the placeholder by its message id, never by position,
// so a second message fired before this one finishes cannot corrupt it. The
// session is persisted once, when the exchange finalizes.
func (s *ChatService) SendMessage(ctx context.Context, token, userID string, req *SendMessageRequest, events StreamEvents) {
	if err := req.Validate(); err != nil {
		events.OnError(&domain.ValidationError{Message: err.Error()})
		return
	}

	msgs, err := s.loadMessages(ctx, userID)
	if err != nil {
		events.OnError(err)
		return
	}

	userMsg := models.ChatMessage{
		ID:      uuid.New().String(),
		Role:    models.RoleUser,
		Content: req.Content,
	}
	placeholder := models.ChatMessage{
		ID:   uuid.New().String(),
		Role: models.RoleAssistant,
	}
	msgs = models.AppendMessage(msgs, userMsg)
	msgs = models.AppendMessage(msgs, placeholder)

	s.client.StreamChat(ctx, token, req.Content,
		func(text string) {
			msgs = models.ReplaceMessage(msgs, placeholder.ID, func(m models.ChatMessage) models.ChatMessage {
				m.Content += text
				return m
			})
			events.OnChunk(text)
		},
		func(fullText string, intent models.ActionType) {
			var assistant models.ChatMessage
			msgs = models.ReplaceMessage(msgs, placeholder.ID, func(m models.ChatMessage) models.ChatMessage {
				m.Content = fullText
				m.Action = models.SuggestAction(intent, req.Content)
				assistant = m
				return m
			})

			if _, err := s.sessions.Upsert(ctx, userID, msgs); err != nil {
				// The reply already reached the client; losing history is
				// worth a log line, not a failed exchange.
				s.logger.Error("failed to persist chat session", "user_id", userID, "error", err)
			}
			events.OnComplete(assistant)
		},
		func(err error) {
			s.logger.Warn("chat stream failed", "user_id", userID, "error", err)
			events.OnError(err)
		},
	)
}

// Consult runs one non-streaming exchange against the context-chat function
// and persists the updated session before returning the assistant message.
func (s *ChatService) Consult(ctx context.Context, token, userID string, req *SendMessageRequest) (*models.ChatMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	reply, intent, err := s.client.GetContextChat(ctx, token, req.Content)
	if err != nil {
		return nil, err
	}

	msgs, err := s.loadMessages(ctx, userID)
	if err != nil {
		return nil, err
	}

	assistant := models.ChatMessage{
		ID:      uuid.New().String(),
		Role:    models.RoleAssistant,
		Content: reply,
		Action:  models.SuggestAction(intent, req.Content),
	}
	msgs = models.AppendMessage(msgs, models.ChatMessage{
		ID:      uuid.New().String(),
		Role:    models.RoleUser,
		Content: req.Content,
	})
	msgs = models.AppendMessage(msgs, assistant)

	if _, err := s.sessions.Upsert(ctx, userID, msgs); err != nil {
		s.logger.Error("failed to persist chat session", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &assistant, nil
}

// GetSession returns the user's session, or an empty one if none exists yet.
func (s *ChatService) GetSession(ctx context.Context, userID string) (*models.ChatSession, error) {
	session, err := s.sessions.Fetch(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load chat session", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return &models.ChatSession{
			UserID:   userID,
			Messages: []models.ChatMessage{},
		}, nil
	}
	return session, nil
}

// ClearSession deletes the user's session. Clearing an absent session is a
// no-op.
func (s *ChatService) ClearSession(ctx context.Context, userID string) error {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		s.logger.Error("failed to delete chat session", "user_id", userID, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *ChatService) loadMessages(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	session, err := s.sessions.Fetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	return session.Messages, nil
}
