package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Connector hands out database handles to the repository. The release
// function must be called once the statement has finished.
type Connector interface {
	Acquire(ctx context.Context) (*gorm.DB, func(), error)
	Close() error
}

// OpenFunc opens a brand-new database handle
type OpenFunc func(ctx context.Context) (*gorm.DB, error)

// PooledConnector shares one *gorm.DB and its database/sql pool across calls.
type PooledConnector struct {
	db *gorm.DB
}

// NewPooledConnector wraps an already opened database handle
func NewPooledConnector(db *gorm.DB) *PooledConnector {
	return &PooledConnector{db: db}
}

// Acquire verifies that the pool can hand out a live connection, dialling
// one if needed, and returns the shared handle bound to ctx. An unreachable
// store fails here rather than inside a statement. Release is a no-op.
func (c *PooledConnector) Acquire(ctx context.Context) (*gorm.DB, func(), error) {
	sqlDB, err := c.db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, nil, err
	}

	return c.db.WithContext(ctx), func() {}, nil
}

// Close closes the underlying pool
func (c *PooledConnector) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// PerCallConnector opens a fresh connection for every statement and closes
// it on release. Kept as the legacy mode; throughput is bounded by connect cost.
type PerCallConnector struct {
	open OpenFunc
	log  *zap.Logger
}

// NewPerCallConnector creates a connector that dials on every Acquire
func NewPerCallConnector(open OpenFunc, log *zap.Logger) *PerCallConnector {
	return &PerCallConnector{open: open, log: log}
}

// Acquire opens a new connection
func (c *PerCallConnector) Acquire(ctx context.Context) (*gorm.DB, func(), error) {
	db, err := c.open(ctx)
	if err != nil {
		return nil, nil, err
	}

	release := func() {
		sqlDB, err := db.DB()
		if err != nil {
			c.log.Warn("failed to get underlying sql.DB on release", zap.Error(err))
			return
		}
		if err := sqlDB.Close(); err != nil {
			c.log.Warn("failed to close per-call connection", zap.Error(err))
		}
	}

	return db.WithContext(ctx), release, nil
}

// Close is a no-op; per-call connections never outlive their statement.
func (c *PerCallConnector) Close() error {
	return nil
}
