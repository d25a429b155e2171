package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"larismanis/internal/domain/models"
	"larismanis/internal/domain/repositories"
)

// PostgresSessionRepository implements the SessionRepository interface using PostgreSQL
type PostgresSessionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSessionRepository creates a new PostgresSessionRepository
func NewSessionRepository(config *RepositoryConfig) repositories.SessionRepository {
	return &PostgresSessionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Fetch returns the user's session or nil when none exists. At most one row
// per user.
func (r *PostgresSessionRepository) Fetch(ctx context.Context, userID string) (*models.ChatSession, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, messages, updated_at
		FROM %s
		WHERE user_id = $1
		LIMIT 1
	`, r.tables.ChatSessions)

	var session models.ChatSession
	var payload []byte
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID).Scan(
		&session.ID,
		&session.UserID,
		&payload,
		&session.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch chat session: %w", err)
	}

	session.Messages = r.decodeMessages(payload, session.ID)
	return &session, nil
}

// Upsert writes the full message list, creating the session row on first use.
func (r *PostgresSessionRepository) Upsert(ctx context.Context, userID string, messages []models.ChatMessage) (*models.ChatSession, error) {
	payload, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("encode messages: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, messages, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE
		SET messages = EXCLUDED.messages, updated_at = now()
		RETURNING id, user_id, updated_at
	`, r.tables.ChatSessions)

	session := models.ChatSession{Messages: messages}
	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query, userID, payload).Scan(
		&session.ID,
		&session.UserID,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert chat session: %w", err)
	}

	return &session, nil
}

// Delete removes the user's session row. Deleting an absent session is a no-op.
func (r *PostgresSessionRepository) Delete(ctx context.Context, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, r.tables.ChatSessions)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("delete chat session: %w", err)
	}
	return nil
}

// decodeMessages tolerates the messages column holding either a structured
// JSON array or a JSON-encoded string containing one (sessions written by
// older clients). Malformed JSON yields an empty list, logged, never an error.
func (r *PostgresSessionRepository) decodeMessages(payload []byte, sessionID string) []models.ChatMessage {
	var messages []models.ChatMessage
	if err := json.Unmarshal(payload, &messages); err == nil {
		return messages
	}

	var doubleEncoded string
	if err := json.Unmarshal(payload, &doubleEncoded); err == nil {
		if err := json.Unmarshal([]byte(doubleEncoded), &messages); err == nil {
			return messages
		}
	}

	r.logger.Warn("chat session has malformed messages column, treating as empty",
		"session_id", sessionID,
	)
	return nil
}
