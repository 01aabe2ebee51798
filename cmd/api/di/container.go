package di

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"raw-user-service/cmd/api/infrastructure"
	"raw-user-service/internal/adapter/cache"
	"raw-user-service/internal/adapter/db/postgres"
	ginhandler "raw-user-service/internal/adapter/gin/handler"
	"raw-user-service/internal/adapter/repository/cached"
	tcphandler "raw-user-service/internal/adapter/tcp/handler"
	"raw-user-service/internal/adapter/tcp/middleware"
	"raw-user-service/internal/config"
	"raw-user-service/internal/usecase/user"
	"raw-user-service/pkg/health"
	"raw-user-service/pkg/health/checkers"
	redisclient "raw-user-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB // nil under the per-call policy
	Connector     postgres.Connector
	RedisClient   *redisclient.Client
	UserRepo      *postgres.UserRepoPG
	UserUC        user.Usecase
	RateLimiter   *middleware.RateLimiter
	UserHandler   *tcphandler.UserHandler
	HealthHandler *ginhandler.HealthHandler
}

// NewContainer creates and initializes all application dependencies.
// The users table is created here, before any listener is bound.
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	// Initialize database
	conn, db, err := infrastructure.NewConnector(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.Connector = conn
	c.DB = db

	c.UserRepo = postgres.NewUserRepoPG(conn, l)
	if err := c.UserRepo.EnsureSchema(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}

	checks := []health.Checker{checkers.NewDatabaseChecker(c.UserRepo)}
	var repo user.Repository = c.UserRepo

	// Redis backs the optional cache and rate limiter
	if cfg.RedisRequired() {
		rdb, err := infrastructure.NewRedisClient(cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb
		checks = append(checks, checkers.NewRedisChecker(rdb))

		if cfg.Cache.Enabled {
			userCache := cache.NewRedisUserCache(
				rdb.Client,
				time.Duration(cfg.Cache.TTL)*time.Second,
				l,
			)
			repo = cached.NewUserRepository(c.UserRepo, userCache, l)
			l.Info("user read cache enabled", zap.Int("ttl_seconds", cfg.Cache.TTL))
		}

		if cfg.RateLimit.Enabled {
			c.RateLimiter = middleware.NewRateLimiter(
				rdb.Client,
				middleware.RateLimiterConfig{
					RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
					WindowSeconds:     cfg.RateLimit.WindowSeconds,
					Enabled:           cfg.RateLimit.Enabled,
				},
				l,
			)
			l.Info("rate limiting enabled",
				zap.Float64("requests_per_second", cfg.RateLimit.RequestsPerSecond),
				zap.Int("window_seconds", cfg.RateLimit.WindowSeconds),
			)
		}
	}

	// Initialize use case
	c.UserUC = user.New(repo, l)

	// Initialize transport handlers
	c.UserHandler = tcphandler.NewUserHandler(c.UserUC, l)
	c.HealthHandler = ginhandler.NewHealthHandler(health.NewService(checks...), cfg.Logger.ServiceName, l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.Connector != nil {
		if err := c.Connector.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
