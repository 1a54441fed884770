package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/group-post-monitor/internal/graph"
)

// QuotaHandler provides the Graph API quota status endpoint.
type QuotaHandler struct {
	rl *graph.RateLimiter
}

// NewQuotaHandler creates a new QuotaHandler.
func NewQuotaHandler(rl *graph.RateLimiter) *QuotaHandler {
	return &QuotaHandler{rl: rl}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		HourlyLimit int64      `json:"hourly_limit"       example:"200"                  doc:"Configured hourly API call budget, 0 when unlimited"`
		HourlyUsed  int64      `json:"hourly_used"        example:"42"                   doc:"API calls made in the current one-hour window"`
		Remaining   int64      `json:"remaining"          example:"158"                  doc:"API calls remaining in the current window, -1 when unlimited"`
		ResetAt     *time.Time `json:"reset_at,omitempty" example:"2025-06-16T14:30:00Z" doc:"When the current window expires"`
	}
}

// GetQuota returns the current Graph API quota status.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	if h.rl == nil {
		return resp, nil
	}

	resetAt := h.rl.ResetAt()
	resp.Body.HourlyLimit = h.rl.MaxHourly()
	resp.Body.HourlyUsed = h.rl.HourlyCount()
	resp.Body.Remaining = h.rl.Remaining()
	resp.Body.ResetAt = &resetAt

	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get Graph API quota status",
		Description: "Returns the API calls used in the current one-hour window, the remaining budget, and when the window resets.",
		Tags:        []string{"graph"},
	}, h.GetQuota)
}
