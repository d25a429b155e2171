package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"larismanis/internal/domain"
	"larismanis/internal/domain/models"
	"larismanis/internal/domain/repositories"
	"larismanis/internal/planner"
)

// PostgresPlanRepository implements the PlanRepository interface using PostgreSQL
type PostgresPlanRepository struct {
	pool      *pgxpool.Pool
	tables    *TableNames
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewPlanRepository creates a new PostgresPlanRepository
func NewPlanRepository(config *RepositoryConfig) repositories.PlanRepository {
	return &PostgresPlanRepository{
		pool:      config.Pool,
		tables:    config.Tables,
		txManager: config.TxManager,
		logger:    config.Logger,
	}
}

// FetchAll loads all plan rows for the user, newest row first, flattened into
// composite-id items.
func (r *PostgresPlanRepository) FetchAll(ctx context.Context, userID string) ([]models.PlanItem, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, business_type, plans, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, r.tables.ContentPlans)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch plans: %w", err)
	}
	defer rows.Close()

	var planRows []models.PlanRow
	for rows.Next() {
		var row models.PlanRow
		var plans []byte
		err := rows.Scan(&row.ID, &row.UserID, &row.BusinessType, &plans, &row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan plan row: %w", err)
		}
		row.Plans = decodePlanEntries(plans, row.ID, r.logger)
		planRows = append(planRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch plans: %w", err)
	}

	return planner.FlattenRows(planRows), nil
}

// SaveOne wraps a single entry in a new one-entry row.
func (r *PostgresPlanRepository) SaveOne(ctx context.Context, userID, businessType string, entry models.PlanEntry) (*models.PlanItem, error) {
	items, err := r.SaveMany(ctx, userID, businessType, []models.PlanEntry{entry})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// SaveMany wraps all entries in one new row, preserving input order.
func (r *PostgresPlanRepository) SaveMany(ctx context.Context, userID, businessType string, entries []models.PlanEntry) ([]models.PlanItem, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("save plans: %w", domain.ErrValidation)
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode plan entries: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, business_type, plans, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, created_at
	`, r.tables.ContentPlans)

	row := models.PlanRow{
		UserID:       userID,
		BusinessType: businessType,
		Plans:        entries,
	}
	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query, userID, businessType, payload).
		Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("save plans: %w", err)
	}

	return planner.FlattenRow(&row), nil
}

// DeleteEntry removes the single entry addressed by a composite id. The
// owning row is rewritten minus that entry inside a transaction; siblings
// survive, and the row itself is deleted only when its last entry goes.
func (r *PostgresPlanRepository) DeleteEntry(ctx context.Context, userID, compositeID string) error {
	rowID, index, err := planner.SplitCompositeID(compositeID)
	if err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrValidation)
	}

	return r.txManager.ExecTx(ctx, func(ctx context.Context) error {
		executor := GetExecutor(ctx, r.pool)

		query := fmt.Sprintf(`
			SELECT plans FROM %s
			WHERE id = $1 AND user_id = $2
			FOR UPDATE
		`, r.tables.ContentPlans)

		var payload []byte
		if err := executor.QueryRow(ctx, query, rowID, userID).Scan(&payload); err != nil {
			if IsPgNoRowsError(err) {
				return fmt.Errorf("plan row %s: %w", rowID, domain.ErrNotFound)
			}
			return fmt.Errorf("load plan row: %w", err)
		}

		entries := decodePlanEntries(payload, rowID, r.logger)
		if index >= len(entries) {
			return fmt.Errorf("plan entry %s: %w", compositeID, domain.ErrNotFound)
		}
		entries = append(entries[:index], entries[index+1:]...)

		if len(entries) == 0 {
			del := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.ContentPlans)
			if _, err := executor.Exec(ctx, del, rowID, userID); err != nil {
				return fmt.Errorf("delete plan row: %w", err)
			}
			return nil
		}

		rewritten, err := json.Marshal(entries)
		if err != nil {
			return fmt.Errorf("encode plan entries: %w", err)
		}
		upd := fmt.Sprintf(`UPDATE %s SET plans = $1 WHERE id = $2 AND user_id = $3`, r.tables.ContentPlans)
		if _, err := executor.Exec(ctx, upd, rewritten, rowID, userID); err != nil {
			return fmt.Errorf("rewrite plan row: %w", err)
		}
		return nil
	})
}

// decodePlanEntries tolerates the plans column holding either a JSON array
// or a JSON-encoded string containing one. Malformed JSON degrades to an
// empty list and is logged; a bad row must never take down the calendar.
func decodePlanEntries(payload []byte, rowID string, logger *slog.Logger) []models.PlanEntry {
	var entries []models.PlanEntry
	if err := json.Unmarshal(payload, &entries); err == nil {
		return entries
	}

	var doubleEncoded string
	if err := json.Unmarshal(payload, &doubleEncoded); err == nil {
		if err := json.Unmarshal([]byte(doubleEncoded), &entries); err == nil {
			return entries
		}
	}

	logger.Warn("plan row has malformed plans column, treating as empty", "row_id", rowID)
	return nil
}
