package planner

import (
	"testing"
	"time"

	"larismanis/internal/domain/models"
)

const rowID = "9f8d6c1e-4b2a-4f3c-9d7e-1a2b3c4d5e6f"

func TestSplitCompositeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantRow string
		wantIdx int
		wantErr bool
	}{
		{"uuid row id with dashes", rowID + "-3", rowID, 3, false},
		{"index zero", "row-0", "row", 0, false},
		{"multi-digit index", rowID + "-12", rowID, 12, false},
		{"no separator", "rowid", "", 0, true},
		{"empty index", "row-", "", 0, true},
		{"non-numeric index", rowID + "-abc", "", 0, true},
		{"leading separator only", "-3", "", 0, true},
		{"empty string", "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, idx, err := SplitCompositeID(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SplitCompositeID(%q) = (%q, %d), want error", tt.id, row, idx)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitCompositeID(%q) error: %v", tt.id, err)
			}
			if row != tt.wantRow || idx != tt.wantIdx {
				t.Errorf("SplitCompositeID(%q) = (%q, %d), want (%q, %d)", tt.id, row, idx, tt.wantRow, tt.wantIdx)
			}
		})
	}
}

func TestCompositeIDRoundTrip(t *testing.T) {
	for _, idx := range []int{0, 1, 7, 41} {
		id := CompositeID(rowID, idx)
		row, got, err := SplitCompositeID(id)
		if err != nil {
			t.Fatalf("SplitCompositeID(%q) error: %v", id, err)
		}
		if row != rowID || got != idx {
			t.Errorf("round trip (%q, %d) -> %q -> (%q, %d)", rowID, idx, id, row, got)
		}
	}
}

func TestFlattenRow(t *testing.T) {
	row := &models.PlanRow{
		ID:           rowID,
		BusinessType: "Kuliner",
		Plans: []models.PlanEntry{
			{Date: "15-03-2026", Theme: "Promo pembukaan", ContentType: "Feed Post", Platform: "Instagram"},
			{Date: "16-03-2026", Theme: "Tips harian", ContentType: "Reels", Platform: "TikTok"},
		},
	}

	items := FlattenRow(row)
	if len(items) != 2 {
		t.Fatalf("FlattenRow() returned %d items, want 2", len(items))
	}

	for i, item := range items {
		if want := CompositeID(rowID, i); item.ID != want {
			t.Errorf("item %d id = %q, want %q", i, item.ID, want)
		}
		if item.Category != "Kuliner" {
			t.Errorf("item %d category = %q, want %q", i, item.Category, "Kuliner")
		}
	}

	if !SameDay(items[0].Date, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.Local)) {
		t.Errorf("item 0 date = %v, want 15 March 2026", items[0].Date)
	}
	if items[1].Theme != "Tips harian" || items[1].Platform != "TikTok" {
		t.Errorf("item 1 fields not carried over: %+v", items[1])
	}
}

func TestFlattenRowDefaultsCategory(t *testing.T) {
	row := &models.PlanRow{
		ID:    rowID,
		Plans: []models.PlanEntry{{Date: "15-03-2026", Theme: "Promo"}},
	}

	items := FlattenRow(row)
	if items[0].Category != models.DefaultCategory {
		t.Errorf("category = %q, want default %q", items[0].Category, models.DefaultCategory)
	}
}

func TestFlattenRowMalformedDateFallsBackToToday(t *testing.T) {
	row := &models.PlanRow{
		ID:           rowID,
		BusinessType: "Fashion",
		Plans: []models.PlanEntry{
			{Date: "not-a-date", Theme: "Promo"},
			{Date: "16-03-2026", Theme: "Tips"},
		},
	}

	items := FlattenRow(row)
	if len(items) != 2 {
		t.Fatalf("FlattenRow() returned %d items, want 2 (bad date must not drop the row)", len(items))
	}
	if !SameDay(items[0].Date, time.Now()) {
		t.Errorf("malformed date resolved to %v, want today", items[0].Date)
	}
	if !SameDay(items[1].Date, time.Date(2026, time.March, 16, 0, 0, 0, 0, time.Local)) {
		t.Errorf("sibling entry date = %v, want 16 March 2026", items[1].Date)
	}
}

func TestFlattenRowsKeepsRowOrder(t *testing.T) {
	rows := []models.PlanRow{
		{ID: "row-b", Plans: []models.PlanEntry{{Date: "16-03-2026", Theme: "newest"}}},
		{ID: "row-a", Plans: []models.PlanEntry{{Date: "15-03-2026", Theme: "older"}, {Date: "15-03-2026", Theme: "older-2"}}},
	}

	items := FlattenRows(rows)
	if len(items) != 3 {
		t.Fatalf("FlattenRows() returned %d items, want 3", len(items))
	}
	wantIDs := []string{"row-b-0", "row-a-0", "row-a-1"}
	for i, want := range wantIDs {
		if items[i].ID != want {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, want)
		}
	}
}
