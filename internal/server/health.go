package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postcraft/backend/internal/config"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Templates string `json:"templates"`
}

type healthHandler struct {
	templates config.TemplateStore
	logger    *zap.Logger
}

// handleHealth reports liveness. Templates that have not loaded yet only
// degrade the status.
func (h *healthHandler) handleHealth(c *gin.Context) {
	templates := "not_loaded"
	status := "degraded"
	if h.templates.Loaded() {
		templates = "loaded"
		status = "healthy"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Templates: templates,
	})
}

// handleReadiness loads the templates if needed and reports 503 until that
// succeeds.
func (h *healthHandler) handleReadiness(c *gin.Context) {
	if _, err := h.templates.Load(c.Request.Context()); err != nil {
		h.logger.Warn("Readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "templates_not_loaded",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
