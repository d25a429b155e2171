package planner

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"larismanis/internal/domain/models"
)

// CompositeID builds the UI addressing scheme for one entry within a row:
// "{rowID}-{index}".
func CompositeID(rowID string, index int) string {
	return fmt.Sprintf("%s-%d", rowID, index)
}

// SplitCompositeID recovers the owning row id and entry index from a
// composite id. Row ids are UUIDs and themselves contain dashes, so only the
// trailing "-index" suffix is split off.
func SplitCompositeID(id string) (rowID string, index int, err error) {
	cut := strings.LastIndex(id, "-")
	if cut <= 0 || cut == len(id)-1 {
		return "", 0, fmt.Errorf("composite id %q: want {rowID}-{index}", id)
	}

	index, err = strconv.Atoi(id[cut+1:])
	if err != nil || index < 0 {
		return "", 0, fmt.Errorf("composite id %q: bad entry index", id)
	}

	return id[:cut], index, nil
}

// FlattenRow expands one storage row into individually addressable plan
// items. Entry i becomes the item with id "{row.ID}-{i}", carrying the row's
// business type as category (DefaultCategory when absent). An entry whose
// wire date does not parse is kept, dated today, and logged; a bad date must
// not hide the rest of the row.
func FlattenRow(row *models.PlanRow) []models.PlanItem {
	items := make([]models.PlanItem, 0, len(row.Plans))
	for i, entry := range row.Plans {
		date, err := ParseWireDate(entry.Date)
		if err != nil {
			slog.Warn("plan entry has malformed date, defaulting to today",
				"row_id", row.ID,
				"entry_index", i,
				"date", entry.Date,
			)
			date = time.Now()
		}

		category := row.BusinessType
		if category == "" {
			category = models.DefaultCategory
		}

		items = append(items, models.PlanItem{
			ID:          CompositeID(row.ID, i),
			Date:        date,
			Theme:       entry.Theme,
			ContentType: entry.ContentType,
			VisualIdea:  entry.VisualIdea,
			CaptionHook: entry.CaptionHook,
			Platform:    entry.Platform,
			Category:    category,
		})
	}
	return items
}

// FlattenRows flattens rows in order. Callers pass rows newest-first so the
// most recent batch leads the item list.
func FlattenRows(rows []models.PlanRow) []models.PlanItem {
	var items []models.PlanItem
	for i := range rows {
		items = append(items, FlattenRow(&rows[i])...)
	}
	return items
}
