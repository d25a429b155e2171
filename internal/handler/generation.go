package handler

import (
	"log/slog"
	"net/http"

	"larismanis/internal/httputil"
	"larismanis/internal/service"
)

// maxUploadSize caps product-photo uploads. Clients compress to ~1MB before
// uploading; 10MB leaves room for originals.
const maxUploadSize = 10 << 20

// GenerationHandler handles poster/caption generation HTTP requests
type GenerationHandler struct {
	generations *service.GenerationService
	logger      *slog.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(generations *service.GenerationService, logger *slog.Logger) *GenerationHandler {
	return &GenerationHandler{
		generations: generations,
		logger:      logger,
	}
}

// Generate creates marketing content from an uploaded product photo
// POST /api/generations (multipart form: image, image_style, caption_style)
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	token := httputil.GetBearerToken(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	gen, err := h.generations.Generate(r.Context(), token, userID, file, header.Filename,
		r.FormValue("image_style"),
		r.FormValue("caption_style"),
	)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, gen)
}

// History returns the user's recent generations
// GET /api/generations
func (h *GenerationHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	gens, err := h.generations.History(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, gens)
}

// Styles lists the available prompt presets
// GET /api/generations/styles
func (h *GenerationHandler) Styles(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.generations.Styles())
}
