package handler

import (
	"log/slog"
	"net/http"
	"time"

	"larismanis/internal/httputil"
	"larismanis/internal/planner"
	"larismanis/internal/service"
)

// PlanHandler handles content-calendar HTTP requests
type PlanHandler struct {
	plans  *service.PlanService
	logger *slog.Logger
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(plans *service.PlanService, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{
		plans:  plans,
		logger: logger,
	}
}

// GeneratePlan asks the planning function for a fresh batch and saves it
// POST /api/plans/generate
func (h *PlanHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)
	token := httputil.GetBearerToken(r)

	var req service.GeneratePlanRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items, err := h.plans.Generate(r.Context(), token, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, items)
}

// ListPlans returns the user's flattened plan items
// GET /api/plans
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	items, err := h.plans.List(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// AddPlan saves one manually entered plan item
// POST /api/plans
func (h *PlanHandler) AddPlan(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req service.AddPlanRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.plans.AddManual(r.Context(), userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}

// DeletePlan removes one plan item by composite id
// DELETE /api/plans/{id}
func (h *PlanHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := PathParam(w, r, "id", "Plan ID")
	if !ok {
		return
	}
	userID := httputil.GetUserID(r)

	if err := h.plans.Delete(r.Context(), userID, planID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Calendar returns the bucketed month view
// GET /api/plans/calendar?month=MM-YYYY (defaults to the current month)
func (h *PlanHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	anchor := time.Now()
	if month := r.URL.Query().Get("month"); month != "" {
		// Reuse the wire codec by pinning the anchor to day 1.
		parsed, err := planner.ParseWireDate("01-" + month)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "month must be MM-YYYY")
			return
		}
		anchor = parsed
	}

	view, err := h.plans.Calendar(r.Context(), userID, anchor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// HealthCheck responds to load-balancer probes
// GET /health
func (h *PlanHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
