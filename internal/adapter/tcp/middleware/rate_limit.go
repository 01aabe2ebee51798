package middleware

import (
	"context"
	"fmt"
	"net"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiterConfig holds configuration for the rate limiter.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	WindowSeconds     int
	Enabled           bool
}

// fixedWindowScript counts requests per key and starts the window on the first hit.
var fixedWindowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
	end
	return count
`)

// RateLimiter limits requests per client address using a Redis fixed window.
type RateLimiter struct {
	client *redis.Client
	config RateLimiterConfig
	log    *zap.Logger
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(client *redis.Client, config RateLimiterConfig, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
		log:    log,
	}
}

// MaxRequests is the number of requests a client may send per window.
func (rl *RateLimiter) MaxRequests() int64 {
	return int64(rl.config.RequestsPerSecond * float64(rl.config.WindowSeconds))
}

// Allow reports whether a request from remoteAddr is within quota. Redis
// errors allow the request and are only logged.
func (rl *RateLimiter) Allow(ctx context.Context, remoteAddr string) bool {
	if rl == nil || !rl.config.Enabled {
		return true
	}

	clientIP := ClientIP(remoteAddr)
	key := fmt.Sprintf("ratelimit:conn:%s", clientIP)

	count, err := fixedWindowScript.Run(ctx, rl.client, []string{key}, rl.config.WindowSeconds).Int64()
	if err != nil {
		rl.log.Warn("rate limiter redis error, allowing request",
			zap.String("client_ip", clientIP),
			zap.Error(err),
		)
		return true
	}

	if count > rl.MaxRequests() {
		rl.log.Warn("rate limit exceeded",
			zap.String("client_ip", clientIP),
			zap.Int64("count", count),
			zap.Float64("limit", rl.config.RequestsPerSecond),
		)
		return false
	}
	return true
}

// ClientIP strips the port from a remote address.
func ClientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		if remoteAddr == "" {
			return "unknown"
		}
		return remoteAddr
	}
	return host
}
