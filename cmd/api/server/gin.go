package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "raw-user-service/internal/adapter/gin/handler"
	ginrouter "raw-user-service/internal/adapter/gin/router"
)

// SetupGinServer creates and configures the ops HTTP server
func SetupGinServer(healthHandler *ginhandler.HealthHandler, addr string, l *zap.Logger) *http.Server {
	router := ginrouter.SetupRouter(healthHandler, l)

	l.Info("ops HTTP server configured", zap.String("address", addr))

	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
