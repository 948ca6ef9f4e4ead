package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dafoundation/disaster-relief-api/internal/middleware"
	"github.com/dafoundation/disaster-relief-api/internal/services"
)

// DashboardHandler serves the admin overview.
type DashboardHandler struct {
	dashboard *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats returns entity totals and recent activity.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(middleware.CurrentCaller(c))
	if err != nil {
		respondServiceError(c, err, "/")
		return
	}

	c.JSON(http.StatusOK, stats)
}
