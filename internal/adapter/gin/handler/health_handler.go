package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"raw-user-service/pkg/health"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	readiness health.ReadinessUseCase
	service   string
	log       *zap.Logger
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(readiness health.ReadinessUseCase, service string, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		readiness: readiness,
		service:   service,
		log:       log,
	}
}

// Health handles GET /health. It never touches dependencies.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.service,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	results, err := h.readiness.Ready(c.Request.Context())
	if err != nil {
		h.log.Warn("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"checks": results,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": results,
	})
}
