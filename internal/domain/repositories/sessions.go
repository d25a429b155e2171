package repositories

import (
	"context"

	"larismanis/internal/domain/models"
)

// SessionRepository persists the singleton per-user chat session.
type SessionRepository interface {
	// Fetch returns the user's session, or nil if none exists. A messages
	// column stored as a JSON string is normalized to a structured list;
	// malformed JSON degrades to an empty list and is logged, never raised.
	Fetch(ctx context.Context, userID string) (*models.ChatSession, error)

	// Upsert writes the full message list for the user, creating the
	// session row on first use.
	Upsert(ctx context.Context, userID string, messages []models.ChatMessage) (*models.ChatSession, error)

	// Delete removes the user's session row. Idempotent: deleting an
	// absent session is a no-op.
	Delete(ctx context.Context, userID string) error
}
