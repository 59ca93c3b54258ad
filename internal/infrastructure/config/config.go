package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	Backend   BackendConfig
	Navigator NavigatorConfig
	Watch     WatchConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8090"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// BackendConfig holds dynamic backend loader configuration. Path is an
// explicit library location tried before the discovery order; Disabled
// skips loading entirely and keeps the native implementation.
type BackendConfig struct {
	Path     string `envconfig:"NAVFS_BACKEND_PATH" default:""`
	Disabled bool   `envconfig:"NAVFS_BACKEND_DISABLED" default:"false"`
}

// NavigatorConfig holds filesystem navigation configuration.
type NavigatorConfig struct {
	// Root is the logical root sessions start at and safe paths are
	// confined to.
	Root string `envconfig:"NAVFS_ROOT" default:"/"`
	// Denylist adds directory prefixes to the built-in system denylist.
	Denylist []string `envconfig:"NAVFS_DENYLIST" default:""`
	// CopyBufferSize is the stream chunk size for file copies.
	CopyBufferSize int `envconfig:"NAVFS_COPY_BUFFER" default:"8192"`
}

// WatchConfig holds change-monitor configuration.
type WatchConfig struct {
	Backoff      time.Duration `envconfig:"NAVFS_WATCH_BACKOFF" default:"100ms"`
	PollInterval time.Duration `envconfig:"NAVFS_WATCH_POLL_INTERVAL" default:"1s"`
	// EventBuffer is the per-watch ring capacity for recorded events.
	EventBuffer int `envconfig:"NAVFS_WATCH_EVENT_BUFFER" default:"256"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8090",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Backend: BackendConfig{},
		Navigator: NavigatorConfig{
			Root:           "/",
			CopyBufferSize: 8192,
		},
		Watch: WatchConfig{
			Backoff:      100 * time.Millisecond,
			PollInterval: time.Second,
			EventBuffer:  256,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
