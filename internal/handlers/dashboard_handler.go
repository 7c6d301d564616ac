package handlers

import (
	"log/slog"
	"net/http"

	"github.com/storefront-labs/draft-checkout/internal/service"
)

// DashboardHandler serves the admin dashboard aggregation
type DashboardHandler struct {
	dashboard *service.DashboardService
	log       *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *service.DashboardService, log *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		log:       log,
	}
}

// GetDashboard handles GET /api/admin/dashboard. Upstream failures degrade
// to zero values inside the service, so this always returns 200.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	data := h.dashboard.Dashboard(r.Context())
	WriteJSON(w, http.StatusOK, data, h.log)
}
