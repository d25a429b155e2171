package planner

import "time"

// GridSize is the fixed cell count of the calendar display grid: 6 rows of 7
// days. Six rows always suffice for a Monday-first layout of any 28-31 day
// month.
const GridSize = 42

// MonthGrid computes the display grid for the month containing anchor. The
// result always has exactly GridSize consecutive dates, padded with trailing
// days of the previous month and leading days of the next month so that the
// first cell is a Monday and the last a Sunday. Each call fully recomputes
// the grid.
func MonthGrid(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.Local)

	var month []time.Time
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		month = append(month, d)
	}

	// Remap library-native Sunday=0 to Monday-first ordering.
	lead := int(first.Weekday())
	if lead == 0 {
		lead = 6
	} else {
		lead--
	}

	grid := make([]time.Time, 0, GridSize)
	for i := lead; i > 0; i-- {
		grid = append(grid, first.AddDate(0, 0, -i))
	}
	grid = append(grid, month...)

	next := month[len(month)-1].AddDate(0, 0, 1)
	for len(grid) < GridSize {
		grid = append(grid, next)
		next = next.AddDate(0, 0, 1)
	}

	return grid
}
