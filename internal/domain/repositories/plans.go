package repositories

import (
	"context"

	"larismanis/internal/domain/models"
)

// PlanRepository persists content-plan rows and exposes them as flattened,
// individually addressable items.
type PlanRepository interface {
	// FetchAll loads every plan row for the user, newest row first, and
	// flattens each row's entries into composite-id items. Rows with no
	// entries contribute nothing.
	FetchAll(ctx context.Context, userID string) ([]models.PlanItem, error)

	// SaveOne wraps a single entry in a new one-entry row and returns the
	// flattened item with id "{rowID}-0".
	SaveOne(ctx context.Context, userID, businessType string, entry models.PlanEntry) (*models.PlanItem, error)

	// SaveMany wraps all entries in one new row, preserving input order.
	// Returned ids are "{rowID}-0" .. "{rowID}-(n-1)".
	SaveMany(ctx context.Context, userID, businessType string, entries []models.PlanEntry) ([]models.PlanItem, error)

	// DeleteEntry removes the single entry addressed by a composite id,
	// rewriting the owning row's entry array. Sibling entries survive; the
	// row itself is deleted only once its last entry is removed.
	DeleteEntry(ctx context.Context, userID, compositeID string) error
}
