package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/spf13/viper"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Connection policies for the persistence gateway
const (
	PolicyPooled  = "pooled"
	PolicyPerCall = "per_call"
)

// Serve modes for the connection loop
const (
	ServeSequential = "sequential"
	ServeConcurrent = "concurrent"
)

// Config holds all configuration for the application
type Config struct {
	DB        DatabaseConfig
	App       AppConfig
	Ops       OpsConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
}

// DatabaseConfig holds configuration for the database
type DatabaseConfig struct {
	URL             string `mapstructure:"DATABASE_URL"`
	Driver          string `mapstructure:"DB_DRIVER"`
	ConnPolicy      string `mapstructure:"DB_CONN_POLICY"`
	MaxOpenConns    int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `mapstructure:"DB_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime int    `mapstructure:"DB_CONN_MAX_IDLE_TIME"`
}

// AppConfig holds configuration for the raw TCP server
type AppConfig struct {
	Host                   string `mapstructure:"LISTEN_HOST"`
	Port                   string `mapstructure:"LISTEN_PORT"`
	ReadBufferSize         int    `mapstructure:"READ_BUFFER_SIZE"`
	ServeMode              string `mapstructure:"SERVE_MODE"`
	WorkerCount            int    `mapstructure:"WORKER_COUNT"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// OpsConfig holds configuration for the health HTTP server
type OpsConfig struct {
	Enabled bool   `mapstructure:"OPS_HTTP_ENABLED"`
	Port    string `mapstructure:"OPS_HTTP_PORT"`
}

// RedisConfig holds configuration for Redis
type RedisConfig struct {
	Host        string `mapstructure:"REDIS_HOST"`
	Port        string `mapstructure:"REDIS_PORT"`
	Password    string `mapstructure:"REDIS_PASSWORD"`
	DB          int    `mapstructure:"REDIS_DB"`
	MaxRetries  int    `mapstructure:"REDIS_MAX_RETRIES"`
	PoolSize    int    `mapstructure:"REDIS_POOL_SIZE"`
	MinIdleConn int    `mapstructure:"REDIS_MIN_IDLE_CONN"`
}

// CacheConfig holds configuration for the user read cache
type CacheConfig struct {
	Enabled bool `mapstructure:"CACHE_ENABLED"`
	TTL     int  `mapstructure:"REDIS_CACHE_TTL"`
}

// RateLimitConfig holds configuration for the per-client rate limiter
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `mapstructure:"RATE_LIMIT_REQUESTS_PER_SECOND"`
	WindowSeconds     int     `mapstructure:"RATE_LIMIT_WINDOW_SECONDS"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string  `mapstructure:"LOG_LEVEL"`
	Format           string  `mapstructure:"LOG_FORMAT"`
	OutputPath       string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowQuerySeconds float64 `mapstructure:"LOG_SLOW_QUERY_SECONDS"`
	EnableSampling   bool    `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName      string  `mapstructure:"SERVICE_NAME"`
	ServiceVersion   string  `mapstructure:"SERVICE_VERSION"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv() // Read from environment variables

	// Defaults depend on APP_ENV, so they are set after env binding
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app") // Look for app.env
	v.SetConfigType("env")

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	config.DB.URL = v.GetString("DATABASE_URL")
	config.DB.Driver = strings.ToLower(v.GetString("DB_DRIVER"))
	config.DB.ConnPolicy = strings.ToLower(v.GetString("DB_CONN_POLICY"))
	config.DB.MaxOpenConns = v.GetInt("DB_MAX_OPEN_CONNS")
	config.DB.MaxIdleConns = v.GetInt("DB_MAX_IDLE_CONNS")
	config.DB.ConnMaxLifetime = v.GetInt("DB_CONN_MAX_LIFETIME")
	config.DB.ConnMaxIdleTime = v.GetInt("DB_CONN_MAX_IDLE_TIME")

	config.App.Host = v.GetString("LISTEN_HOST")
	config.App.Port = v.GetString("LISTEN_PORT")
	config.App.ReadBufferSize = v.GetInt("READ_BUFFER_SIZE")
	config.App.ServeMode = strings.ToLower(v.GetString("SERVE_MODE"))
	config.App.WorkerCount = v.GetInt("WORKER_COUNT")
	config.App.ShutdownTimeoutSeconds = v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")

	config.Ops.Enabled = v.GetBool("OPS_HTTP_ENABLED")
	config.Ops.Port = v.GetString("OPS_HTTP_PORT")

	config.Redis.Host = v.GetString("REDIS_HOST")
	config.Redis.Port = v.GetString("REDIS_PORT")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")
	config.Redis.MaxRetries = v.GetInt("REDIS_MAX_RETRIES")
	config.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")
	config.Redis.MinIdleConn = v.GetInt("REDIS_MIN_IDLE_CONN")

	config.Cache.Enabled = v.GetBool("CACHE_ENABLED")
	config.Cache.TTL = v.GetInt("REDIS_CACHE_TTL")

	config.RateLimit.Enabled = v.GetBool("RATE_LIMIT_ENABLED")
	config.RateLimit.RequestsPerSecond = v.GetFloat64("RATE_LIMIT_REQUESTS_PER_SECOND")
	config.RateLimit.WindowSeconds = v.GetInt("RATE_LIMIT_WINDOW_SECONDS")

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = v.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_CONN_POLICY", PolicyPooled)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("LISTEN_HOST", "0.0.0.0")
	v.SetDefault("LISTEN_PORT", "8080")
	v.SetDefault("READ_BUFFER_SIZE", 1024)
	v.SetDefault("SERVE_MODE", ServeSequential)
	v.SetDefault("WORKER_COUNT", 4)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	v.SetDefault("OPS_HTTP_ENABLED", true)
	v.SetDefault("OPS_HTTP_PORT", "8081")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONN", 2)

	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_CACHE_TTL", 300)

	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_REQUESTS_PER_SECOND", 10)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	// Logger defaults
	env := v.GetString("APP_ENV")
	if env == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stdout")
	v.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	v.SetDefault("SERVICE_NAME", "raw-user-service")
	v.SetDefault("SERVICE_VERSION", "1.0.0")
}

// Validate checks that the configuration is usable before any dependency is built
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DB.URL) == "" {
		errs = append(errs, errors.New("DATABASE_URL must be set"))
	}
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver))
	}
	switch c.DB.ConnPolicy {
	case PolicyPooled, PolicyPerCall:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_CONN_POLICY %q", c.DB.ConnPolicy))
	}
	switch c.App.ServeMode {
	case ServeSequential, ServeConcurrent:
	default:
		errs = append(errs, fmt.Errorf("unsupported SERVE_MODE %q", c.App.ServeMode))
	}
	if c.App.ReadBufferSize <= 0 {
		errs = append(errs, errors.New("READ_BUFFER_SIZE must be positive"))
	}
	if c.App.ServeMode == ServeConcurrent && c.App.WorkerCount <= 0 {
		errs = append(errs, errors.New("WORKER_COUNT must be positive in concurrent mode"))
	}
	if (c.Cache.Enabled || c.RateLimit.Enabled) && c.Redis.Host == "" {
		errs = append(errs, errors.New("REDIS_HOST must be set when cache or rate limiting is enabled"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.WindowSeconds <= 0) {
		errs = append(errs, errors.New("rate limit requires positive RATE_LIMIT_REQUESTS_PER_SECOND and RATE_LIMIT_WINDOW_SECONDS"))
	}

	return errors.Join(errs...)
}

// RedisRequired reports whether any enabled feature needs a Redis connection
func (c *Config) RedisRequired() bool {
	return c.Cache.Enabled || c.RateLimit.Enabled
}

// ListenAddress returns the address the raw TCP server binds to
func (a *AppConfig) ListenAddress() string {
	return net.JoinHostPort(a.Host, a.Port)
}

// Address returns the address the ops HTTP server binds to
func (o *OpsConfig) Address() string {
	return ":" + o.Port
}
