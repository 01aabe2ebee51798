package checkers

import (
	"context"
	"time"
)

// Pinger is anything that can verify its own connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingChecker checks a dependency with a bounded ping.
type PingChecker struct {
	name    string
	pinger  Pinger
	timeout time.Duration
}

// NewDatabaseChecker checks the user store.
func NewDatabaseChecker(p Pinger) *PingChecker {
	return &PingChecker{name: "database", pinger: p, timeout: time.Second}
}

// NewRedisChecker checks the Redis connection.
func NewRedisChecker(p Pinger) *PingChecker {
	return &PingChecker{name: "redis", pinger: p, timeout: time.Second}
}

// Name identifies the checker in readiness results.
func (c *PingChecker) Name() string { return c.name }

// Check pings the dependency, giving up after the checker's timeout.
func (c *PingChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.pinger.Ping(ctx)
}
