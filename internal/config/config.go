package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the QA service
type Config struct {
	// Server configuration
	HTTPPort int    `env:"QA_HTTP_PORT" envDefault:"8080"`
	GRPCPort int    `env:"QA_GRPC_PORT" envDefault:"9090"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Inference configuration
	Inference InferenceConfig

	// Worker configuration
	Workers WorkerConfig

	// Request limits
	Limits LimitConfig

	// Answer cache configuration
	Cache CacheConfig

	// Redis configuration
	Redis RedisConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// InferenceConfig holds inference engine configuration
type InferenceConfig struct {
	Provider string `env:"QA_INFERENCE_PROVIDER" envDefault:"lexical"`
	APIKey   string `env:"QA_INFERENCE_API_KEY"`
	Model    string `env:"QA_INFERENCE_MODEL"`

	// Per remote API call
	RequestTimeout time.Duration `env:"QA_INFERENCE_REQUEST_TIMEOUT" envDefault:"60s"`
}

// WorkerConfig holds offload pool configuration
type WorkerConfig struct {
	PoolSize            int           `env:"QA_WORKER_POOL_SIZE" envDefault:"4"`
	QueueSize           int           `env:"QA_WORKER_QUEUE_SIZE" envDefault:"64"`
	HealthCheckInterval time.Duration `env:"QA_WORKER_HEALTH_CHECK_INTERVAL" envDefault:"30s"`
}

// LimitConfig holds inquiry size limits, 0 means unlimited
type LimitConfig struct {
	MaxQuestionBytes int `env:"QA_MAX_QUESTION_BYTES" envDefault:"0"`
	MaxContextBytes  int `env:"QA_MAX_CONTEXT_BYTES" envDefault:"0"`
}

// CacheConfig holds answer cache configuration
type CacheConfig struct {
	Backend    string        `env:"QA_CACHE_BACKEND" envDefault:"none"`
	TTL        time.Duration `env:"QA_CACHE_TTL" envDefault:"10m"`
	MaxEntries int           `env:"QA_CACHE_MAX_ENTRIES" envDefault:"1024"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASS"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	// Connection pool settings
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	MaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	// Bounds how long a request waits for inference, 0 waits indefinitely
	Inference         time.Duration `env:"QA_INFERENCE_TIMEOUT" envDefault:"0s"`
	ReadHeaderTimeout time.Duration `env:"TIMEOUT_READ_HEADER" envDefault:"10s"`
	ShutdownTimeout   time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"30s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server ports
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}
	if c.GRPCPort == c.HTTPPort {
		return fmt.Errorf("gRPC port %d collides with HTTP port", c.GRPCPort)
	}

	// Validate inference config
	switch c.Inference.Provider {
	case "lexical":
	case "anthropic", "openai":
		if c.Inference.APIKey == "" {
			return fmt.Errorf("inference API key is required for provider %s", c.Inference.Provider)
		}
	default:
		return fmt.Errorf("unsupported inference provider: %s (must be lexical, anthropic, or openai)", c.Inference.Provider)
	}

	// Validate worker config
	if c.Workers.PoolSize < 1 {
		return fmt.Errorf("worker pool size must be at least 1")
	}
	if c.Workers.QueueSize < 0 {
		return fmt.Errorf("worker queue size must not be negative")
	}
	if c.Workers.HealthCheckInterval <= 0 {
		return fmt.Errorf("worker health check interval must be positive")
	}

	if c.Limits.MaxQuestionBytes < 0 || c.Limits.MaxContextBytes < 0 {
		return fmt.Errorf("request limits must not be negative")
	}
	if c.Timeouts.Inference < 0 {
		return fmt.Errorf("inference timeout must not be negative")
	}

	// Validate cache config
	switch c.Cache.Backend {
	case "none":
	case "memory":
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("memory cache needs at least one entry")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis cache")
		}
	default:
		return fmt.Errorf("unsupported cache backend: %s (must be none, memory, or redis)", c.Cache.Backend)
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// GRPCEnabled reports whether the gRPC health server should run
func (c *Config) GRPCEnabled() bool {
	return c.GRPCPort != 0
}
