package models

import "time"

// MarketingContent is the result of one image/caption generation call.
type MarketingContent struct {
	ImageURL    string `json:"imageUrl"`
	Caption     string `json:"caption"`
	Description string `json:"description"`
}

// Generation is one persisted image-generation result, shown in the
// dashboard history strip.
type Generation struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	ImageURL    string    `json:"generated_image_url" db:"generated_image_url"`
	Caption     string    `json:"caption" db:"caption"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
