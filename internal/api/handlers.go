package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabbyferm/savory/backend/internal/logging"
)

// Version is reported by the health endpoint
const Version = "v1.0.0"

// HealthHandler reports whether the API and its database are reachable
type HealthHandler struct {
	check func(ctx context.Context) error
}

// NewHealthHandler creates a HealthHandler that runs check on every probe
func NewHealthHandler(check func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{check: check}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.check != nil {
		if err := h.check(c.Request.Context()); err != nil {
			logging.FromContext(c.Request.Context()).Error("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unreachable",
				"version":  Version,
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "ok",
		"version":  Version,
	})
}
