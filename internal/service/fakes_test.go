package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"larismanis/internal/domain"
	"larismanis/internal/domain/models"
	"larismanis/internal/planner"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePlanRepo keeps plan rows in memory with the same row/entry semantics as
// the Postgres implementation: one row per save batch, flattened composite-id
// items, entry-level delete that preserves siblings.
type fakePlanRepo struct {
	rows   []models.PlanRow
	nextID int
}

func (f *fakePlanRepo) FetchAll(_ context.Context, userID string) ([]models.PlanItem, error) {
	var owned []models.PlanRow
	for _, row := range f.rows {
		if row.UserID == userID {
			owned = append(owned, row)
		}
	}
	return planner.FlattenRows(owned), nil
}

func (f *fakePlanRepo) SaveOne(ctx context.Context, userID, businessType string, entry models.PlanEntry) (*models.PlanItem, error) {
	items, err := f.SaveMany(ctx, userID, businessType, []models.PlanEntry{entry})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (f *fakePlanRepo) SaveMany(_ context.Context, userID, businessType string, entries []models.PlanEntry) ([]models.PlanItem, error) {
	f.nextID++
	row := models.PlanRow{
		ID:           fmt.Sprintf("row-%d", f.nextID),
		UserID:       userID,
		BusinessType: businessType,
		Plans:        entries,
		CreatedAt:    time.Now(),
	}
	// Newest row first, matching the created_at DESC read order.
	f.rows = append([]models.PlanRow{row}, f.rows...)
	return planner.FlattenRow(&row), nil
}

func (f *fakePlanRepo) DeleteEntry(_ context.Context, userID, compositeID string) error {
	rowID, index, err := planner.SplitCompositeID(compositeID)
	if err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrValidation)
	}

	for i, row := range f.rows {
		if row.ID != rowID || row.UserID != userID {
			continue
		}
		if index >= len(row.Plans) {
			return domain.ErrNotFound
		}
		entries := append(append([]models.PlanEntry(nil), row.Plans[:index]...), row.Plans[index+1:]...)
		if len(entries) == 0 {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
		} else {
			f.rows[i].Plans = entries
		}
		return nil
	}
	return domain.ErrNotFound
}

// fakeSessionRepo is an in-memory singleton-session store.
type fakeSessionRepo struct {
	sessions map[string]*models.ChatSession
	upserts  int
	fetchErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.ChatSession{}}
}

func (f *fakeSessionRepo) Fetch(_ context.Context, userID string) (*models.ChatSession, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.sessions[userID], nil
}

func (f *fakeSessionRepo) Upsert(_ context.Context, userID string, messages []models.ChatMessage) (*models.ChatSession, error) {
	f.upserts++
	session := &models.ChatSession{
		ID:        "sess-" + userID,
		UserID:    userID,
		Messages:  messages,
		UpdatedAt: time.Now(),
	}
	f.sessions[userID] = session
	return session, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, userID string) error {
	delete(f.sessions, userID)
	return nil
}

// fakeGenerationRepo records inserts and serves a canned history.
type fakeGenerationRepo struct {
	inserted []*models.Generation
	history  []models.Generation
}

func (f *fakeGenerationRepo) Insert(_ context.Context, gen *models.Generation) error {
	gen.ID = fmt.Sprintf("gen-%d", len(f.inserted)+1)
	gen.CreatedAt = time.Now()
	f.inserted = append(f.inserted, gen)
	return nil
}

func (f *fakeGenerationRepo) Recent(_ context.Context, userID string, limit int) ([]models.Generation, error) {
	if limit < len(f.history) {
		return f.history[:limit], nil
	}
	return f.history, nil
}

// failingGenerationRepo rejects every insert.
type failingGenerationRepo struct{}

func (f *failingGenerationRepo) Insert(context.Context, *models.Generation) error {
	return fmt.Errorf("insert failed")
}

func (f *failingGenerationRepo) Recent(context.Context, string, int) ([]models.Generation, error) {
	return nil, nil
}

func mustParseWire(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := planner.ParseWireDate(s)
	if err != nil {
		t.Fatalf("ParseWireDate(%q): %v", s, err)
	}
	return d
}
