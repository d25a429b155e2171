package planner

import (
	"time"

	"larismanis/internal/domain/models"
)

// TasksForDate returns the items scheduled on the given calendar day, in
// their original relative order. Matching is by exact (day, month, year)
// equality. The full list is re-filtered on each call; at tens of items per
// user that is cheaper than maintaining an index.
func TasksForDate(items []models.PlanItem, date time.Time) []models.PlanItem {
	var out []models.PlanItem
	for _, item := range items {
		if SameDay(item.Date, date) {
			out = append(out, item)
		}
	}
	return out
}

// IsEmptyDay reports whether the "plan something for this day" affordance
// applies: the day belongs to the anchor month and has no scheduled items.
// This is derived on demand, not stored.
func IsEmptyDay(date, anchor time.Time, items []models.PlanItem) bool {
	if date.Month() != anchor.Month() || date.Year() != anchor.Year() {
		return false
	}
	return len(TasksForDate(items, date)) == 0
}
