package models

import "time"

// DefaultCategory is the fallback classification for plan items whose owning
// row carries no business type.
const DefaultCategory = "Promosi"

// PlanEntry is the wire and storage form of one scheduled content idea, as
// produced by the content-planning function. Date stays in the DD-MM-YYYY
// wire format until the entry is flattened into a PlanItem.
type PlanEntry struct {
	Date        string `json:"date"`
	Theme       string `json:"theme"`
	ContentType string `json:"content_type"`
	VisualIdea  string `json:"visual_idea"`
	CaptionHook string `json:"caption_hook"`
	Platform    string `json:"platform"`
}

// PlanRow is one persisted content_plans record. A row is the unit of
// insertion; individual entries are the unit of display and deletion.
type PlanRow struct {
	ID           string      `json:"id" db:"id"`
	UserID       string      `json:"user_id" db:"user_id"`
	BusinessType string      `json:"business_type" db:"business_type"`
	Plans        []PlanEntry `json:"plans" db:"plans"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}

// PlanItem is one individually addressable scheduled content idea as the
// calendar consumes it. For persisted items ID is the composite
// "{rowID}-{index}" so selection and deletion can target exactly one entry
// even though multiple entries share a storage row. Date comparisons are by
// (day, month, year) only.
type PlanItem struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Theme       string    `json:"theme"`
	ContentType string    `json:"content_type"`
	VisualIdea  string    `json:"visual_idea"`
	CaptionHook string    `json:"caption_hook"`
	Platform    string    `json:"platform"`
	Category    string    `json:"category"`
}
