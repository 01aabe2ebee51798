package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"raw-user-service/internal/adapter/gin/handler"
	"raw-user-service/internal/adapter/gin/middleware"
)

// SetupRouter configures and returns the ops router
func SetupRouter(healthHandler *handler.HealthHandler, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	return router
}
