package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"larismanis/internal/domain/models"
	"larismanis/internal/domain/repositories"
	"larismanis/internal/functions"
	"larismanis/internal/styles"
)

// GenerationService owns poster/caption generation from a product photo and
// the dashboard history strip.
type GenerationService struct {
	repo         repositories.GenerationRepository
	client       *functions.Client
	styles       *styles.Registry
	logger       *slog.Logger
	historyLimit int
}

// NewGenerationService creates a new generation service
func NewGenerationService(
	repo repositories.GenerationRepository,
	client *functions.Client,
	registry *styles.Registry,
	historyLimit int,
	logger *slog.Logger,
) *GenerationService {
	return &GenerationService{
		repo:         repo,
		client:       client,
		styles:       registry,
		logger:       logger,
		historyLimit: historyLimit,
	}
}

// Generate composes the style prompts, calls the marketing-content function
// with the uploaded image, and records the result. History persistence is
// best-effort: a successful generation is never discarded because the
// history insert failed.
func (s *GenerationService) Generate(ctx context.Context, token, userID string, image io.Reader, filename, imageStyle, captionStyle string) (*models.Generation, error) {
	content, err := s.client.GenerateMarketingContent(ctx, token, image, filename,
		s.styles.ImagePrompt(imageStyle),
		s.styles.CaptionPrompt(captionStyle),
	)
	if err != nil {
		return nil, err
	}

	gen := &models.Generation{
		UserID:      userID,
		ImageURL:    content.ImageURL,
		Caption:     content.Caption,
		Description: content.Description,
		Status:      "completed",
	}
	if err := s.repo.Insert(ctx, gen); err != nil {
		s.logger.Error("failed to record generation", "user_id", userID, "error", err)
	}

	return gen, nil
}

// History returns the user's recent generations for the dashboard strip.
func (s *GenerationService) History(ctx context.Context, userID string) ([]models.Generation, error) {
	gens, err := s.repo.Recent(ctx, userID, s.historyLimit)
	if err != nil {
		s.logger.Error("failed to load generation history", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return gens, nil
}

// StyleOptions lists the available preset ids for the upload form.
type StyleOptions struct {
	ImageStyles   []string `json:"image_styles"`
	CaptionStyles []string `json:"caption_styles"`
}

// Styles returns the preset ids.
func (s *GenerationService) Styles() StyleOptions {
	return StyleOptions{
		ImageStyles:   s.styles.ImageStyleIDs(),
		CaptionStyles: s.styles.CaptionStyleIDs(),
	}
}
