package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"larismanis/internal/domain"
	"larismanis/internal/domain/models"
	"larismanis/internal/domain/repositories"
	"larismanis/internal/functions"
	"larismanis/internal/planner"
)

// PlanService owns the content-calendar workflow: generating a plan batch via
// the planning function, persisting it, and shaping the calendar view.
type PlanService struct {
	repo   repositories.PlanRepository
	client *functions.Client
	logger *slog.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(repo repositories.PlanRepository, client *functions.Client, logger *slog.Logger) *PlanService {
	return &PlanService{
		repo:   repo,
		client: client,
		logger: logger,
	}
}

// GeneratePlanRequest asks the planning function for a fresh content calendar.
type GeneratePlanRequest struct {
	BusinessName string `json:"business_name"`
	BusinessType string `json:"business_type"`
}

// Validate implements request validation
func (r *GeneratePlanRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BusinessName, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.BusinessType, validation.Required, validation.Length(1, 80)),
	)
}

// Generate calls the planning function with today as the start date and
// persists the returned entries as one storage row. Returns the flattened
// items, ids "{rowID}-0" .. "{rowID}-(n-1)" in response order.
func (s *PlanService) Generate(ctx context.Context, token, userID string, req *GeneratePlanRequest) ([]models.PlanItem, error) {
	if err := req.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	entries, err := s.client.GenerateContentPlanning(ctx, token, req.BusinessName, req.BusinessType, time.Now())
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		s.logger.Warn("planning function returned no entries",
			"user_id", userID,
			"business_type", req.BusinessType,
		)
		return []models.PlanItem{}, nil
	}

	items, err := s.repo.SaveMany(ctx, userID, req.BusinessType, entries)
	if err != nil {
		s.logger.Error("failed to save generated plan", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	s.logger.Info("content plan generated",
		"user_id", userID,
		"business_type", req.BusinessType,
		"entries", len(items),
	)
	return items, nil
}

// AddPlanRequest adds one manually entered plan item. Date uses the
// YYYY-MM-DD input format; it is converted to the DD-MM-YYYY wire format for
// storage and never stored as-is.
type AddPlanRequest struct {
	Date        string `json:"date"`
	Theme       string `json:"theme"`
	ContentType string `json:"content_type"`
	VisualIdea  string `json:"visual_idea"`
	CaptionHook string `json:"caption_hook"`
	Platform    string `json:"platform"`
	Category    string `json:"category"`
}

// Validate implements request validation
func (r *AddPlanRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Theme, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.ContentType, validation.Length(0, 80)),
		validation.Field(&r.Platform, validation.Length(0, 80)),
	)
}

// AddManual wraps a hand-entered idea in its own one-entry row.
func (s *PlanService) AddManual(ctx context.Context, userID string, req *AddPlanRequest) (*models.PlanItem, error) {
	if err := req.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	date, err := planner.ParseInputDate(req.Date)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	entry := models.PlanEntry{
		Date:        planner.EncodeWireDate(date),
		Theme:       req.Theme,
		ContentType: req.ContentType,
		VisualIdea:  req.VisualIdea,
		CaptionHook: req.CaptionHook,
		Platform:    req.Platform,
	}

	category := req.Category
	if category == "" {
		category = models.DefaultCategory
	}

	item, err := s.repo.SaveOne(ctx, userID, category, entry)
	if err != nil {
		s.logger.Error("failed to save plan entry", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	return item, nil
}

// List returns every plan item for the user, flattened, newest row first.
func (s *PlanService) List(ctx context.Context, userID string) ([]models.PlanItem, error) {
	items, err := s.repo.FetchAll(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load plans", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}
	return items, nil
}

// Delete removes the single item addressed by a composite id. Siblings in
// the same storage row survive.
func (s *PlanService) Delete(ctx context.Context, userID, compositeID string) error {
	if err := s.repo.DeleteEntry(ctx, userID, compositeID); err != nil {
		return err
	}
	s.logger.Info("plan entry deleted", "user_id", userID, "entry_id", compositeID)
	return nil
}

// CalendarCell is one of the 42 grid cells of a month view.
type CalendarCell struct {
	Date     string            `json:"date"` // DD-MM-YYYY
	InMonth  bool              `json:"in_month"`
	Items    []models.PlanItem `json:"items,omitempty"`
	EmptyDay bool              `json:"empty_day"`
}

// CalendarView is the bucketed 6x7 month view.
type CalendarView struct {
	Month string         `json:"month"` // MM-YYYY anchor
	Cells []CalendarCell `json:"cells"`
}

// Calendar builds the Monday-first 42-cell view for the month containing
// anchor, bucketing the user's items onto their cells.
func (s *PlanService) Calendar(ctx context.Context, userID string, anchor time.Time) (*CalendarView, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	grid := planner.MonthGrid(anchor)
	view := &CalendarView{
		Month: fmt.Sprintf("%02d-%04d", int(anchor.Month()), anchor.Year()),
		Cells: make([]CalendarCell, 0, len(grid)),
	}
	for _, day := range grid {
		inMonth := day.Month() == anchor.Month() && day.Year() == anchor.Year()
		view.Cells = append(view.Cells, CalendarCell{
			Date:     planner.EncodeWireDate(day),
			InMonth:  inMonth,
			Items:    planner.TasksForDate(items, day),
			EmptyDay: planner.IsEmptyDay(day, anchor, items),
		})
	}
	return view, nil
}
