package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"larismanis/internal/domain/models"
	"larismanis/internal/domain/repositories"
)

// PostgresGenerationRepository implements the GenerationRepository interface using PostgreSQL
type PostgresGenerationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewGenerationRepository creates a new PostgresGenerationRepository
func NewGenerationRepository(config *RepositoryConfig) repositories.GenerationRepository {
	return &PostgresGenerationRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Insert stores a completed generation.
func (r *PostgresGenerationRepository) Insert(ctx context.Context, gen *models.Generation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, generated_image_url, caption, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, created_at
	`, r.tables.Generations)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		gen.UserID,
		gen.ImageURL,
		gen.Caption,
		gen.Description,
		gen.Status,
	).Scan(&gen.ID, &gen.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}

	return nil
}

// Recent returns the user's most recent generations, newest first.
func (r *PostgresGenerationRepository) Recent(ctx context.Context, userID string, limit int) ([]models.Generation, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, generated_image_url, caption, description, status, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, r.tables.Generations)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var gens []models.Generation
	for rows.Next() {
		var gen models.Generation
		err := rows.Scan(
			&gen.ID,
			&gen.UserID,
			&gen.ImageURL,
			&gen.Caption,
			&gen.Description,
			&gen.Status,
			&gen.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		gens = append(gens, gen)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}

	return gens, nil
}
