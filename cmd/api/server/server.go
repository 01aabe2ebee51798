package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ginhandler "raw-user-service/internal/adapter/gin/handler"
	"raw-user-service/internal/config"
	"raw-user-service/internal/worker"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	TCP    *TCPServer
	Gin    *http.Server
	Pool   worker.Pool
}

// New creates a new server instance. The worker pool exists only in
// concurrent serve mode and the ops server only when enabled.
func New(cfg *config.Config, l *zap.Logger, d Dispatcher, limiter Limiter, healthHandler *ginhandler.HealthHandler) *Server {
	var pool worker.Pool
	if cfg.App.ServeMode == config.ServeConcurrent {
		pool = worker.NewPool(cfg.App.WorkerCount, l)
		l.Info("concurrent serve mode enabled", zap.Int("workers", cfg.App.WorkerCount))
	}

	s := &Server{
		Config: cfg,
		Logger: l,
		TCP:    NewTCPServer(d, limiter, pool, cfg.App.ReadBufferSize, l),
		Pool:   pool,
	}
	if cfg.Ops.Enabled && healthHandler != nil {
		s.Gin = SetupGinServer(healthHandler, cfg.Ops.Address(), l)
	}
	return s
}

// Start binds the TCP listener and serves until ctx is cancelled. The ops
// server keeps running until Shutdown. A failure of either stops both.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(ctx, "tcp", s.Config.App.ListenAddress())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Config.App.ListenAddress(), err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.TCP.Serve(gctx, lis)
	})

	if s.Gin != nil {
		g.Go(func() error {
			s.Logger.Info("ops HTTP server running", zap.String("address", s.Gin.Addr))
			if err := s.Gin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("ops HTTP server: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Shutdown stops the ops server and drains the worker pool.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.Gin != nil {
		s.Logger.Info("shutting down ops HTTP server...")
		if err := s.Gin.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ops HTTP shutdown: %w", err))
		}
	}

	if s.Pool != nil {
		s.Logger.Info("draining worker pool...")
		done := make(chan struct{})
		go func() {
			s.Pool.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("worker pool drain: %w", ctx.Err()))
		}
	}

	return errors.Join(errs...)
}
