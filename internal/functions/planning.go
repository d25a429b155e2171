package functions

import (
	"context"
	"time"

	"larismanis/internal/domain/models"
	"larismanis/internal/planner"
)

// The planning request encodes startDate as DDMMYYYY (no dashes) while the
// response plans come back as DD-MM-YYYY. The asymmetry is what the backend
// expects; see planner.EncodeRequestDate.
type planningRequest struct {
	StartDate    string `json:"startDate"`
	BusinessName string `json:"businessName"`
	BusinessType string `json:"businessType"`
}

type planningResponse struct {
	Success bool `json:"success"`
	Data    struct {
		ID           string `json:"id"`
		BusinessType string `json:"businessType"`
		ContentPlans struct {
			Plans []models.PlanEntry `json:"plans"`
		} `json:"contentPlans"`
	} `json:"data"`
}

// GenerateContentPlanning asks the planning function for a content calendar
// starting at startDate. The returned entries carry DD-MM-YYYY wire dates.
func (c *Client) GenerateContentPlanning(ctx context.Context, token, businessName, businessType string, startDate time.Time) ([]models.PlanEntry, error) {
	req := planningRequest{
		StartDate:    planner.EncodeRequestDate(startDate),
		BusinessName: businessName,
		BusinessType: businessType,
	}

	var resp planningResponse
	if err := c.postJSON(ctx, token, "/generateContentPlanning", req, &resp); err != nil {
		return nil, err
	}

	return resp.Data.ContentPlans.Plans, nil
}
