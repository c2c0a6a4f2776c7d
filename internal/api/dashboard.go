package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabbyferm/savory/backend/internal/service"
)

// DashboardHandler handles dashboard-related requests
type DashboardHandler struct {
	dashboardService service.IDashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService service.IDashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/stats", h.GetStats)
	}
}

// GetStats returns dashboard statistics for the current user
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	stats, err := h.dashboardService.GetStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
