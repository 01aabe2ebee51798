package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"raw-user-service/internal/adapter/db/postgres"
	"raw-user-service/internal/config"
	"raw-user-service/pkg/logger"
)

// NewDialector picks the gorm dialector for the configured driver
func NewDialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		return pgdriver.Open(cfg.DB.URL), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DB.URL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}

// openDatabase opens a gorm handle with the zap-backed gorm logger
func openDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	dialector, err := NewDialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.NewGormLoggerWithConfig(l, cfg.Logger.SlowQuerySeconds, cfg.Logger.Level)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// NewDatabase creates a pooled database connection with GORM configuration
func NewDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := openDatabase(cfg, l)
	if err != nil {
		return nil, err
	}

	// Get underlying sql.DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DB.ConnMaxIdleTime) * time.Second)

	l.Info("database connected successfully",
		zap.String("driver", cfg.DB.Driver),
		zap.Int("max_open_conns", cfg.DB.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.DB.MaxIdleConns),
		zap.Int("conn_max_lifetime_seconds", cfg.DB.ConnMaxLifetime),
		zap.Int("conn_max_idle_time_seconds", cfg.DB.ConnMaxIdleTime),
	)

	return db, nil
}

// NewConnector builds the connector for the configured connection policy.
// The returned *gorm.DB is nil for the per-call policy.
func NewConnector(cfg *config.Config, l *zap.Logger) (postgres.Connector, *gorm.DB, error) {
	switch cfg.DB.ConnPolicy {
	case config.PolicyPooled:
		db, err := NewDatabase(cfg, l)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewPooledConnector(db), db, nil

	case config.PolicyPerCall:
		l.Info("database opened per statement", zap.String("driver", cfg.DB.Driver))
		open := func(ctx context.Context) (*gorm.DB, error) {
			db, err := openDatabase(cfg, l)
			if err != nil {
				return nil, err
			}
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.SetMaxOpenConns(1)
			}
			return db, nil
		}
		return postgres.NewPerCallConnector(open, l), nil, nil

	default:
		return nil, nil, fmt.Errorf("unsupported connection policy %q", cfg.DB.ConnPolicy)
	}
}
