package repositories

import (
	"context"

	"larismanis/internal/domain/models"
)

// GenerationRepository persists image-generation results.
type GenerationRepository interface {
	// Insert stores a completed generation.
	Insert(ctx context.Context, gen *models.Generation) error

	// Recent returns the user's most recent generations, newest first.
	Recent(ctx context.Context, userID string, limit int) ([]models.Generation, error)
}
