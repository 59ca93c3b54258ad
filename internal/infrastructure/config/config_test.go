package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Navigator config
	assert.Equal(t, "/", cfg.Navigator.Root)
	assert.Equal(t, 8192, cfg.Navigator.CopyBufferSize)

	// Watch config
	assert.Equal(t, 100*time.Millisecond, cfg.Watch.Backoff)
	assert.Equal(t, time.Second, cfg.Watch.PollInterval)
	assert.Equal(t, 256, cfg.Watch.EventBuffer)

	// Backend config
	assert.Empty(t, cfg.Backend.Path)
	assert.False(t, cfg.Backend.Disabled)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadOrDefault(t *testing.T) {
	// Should return default when no env vars set
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                      "9000",
		"HOST":                      "127.0.0.1",
		"LOG_LEVEL":                 "debug",
		"LOG_DEV":                   "true",
		"NAVFS_ROOT":                "/srv/data",
		"NAVFS_DENYLIST":            "/srv/secrets/,/srv/keys/",
		"NAVFS_COPY_BUFFER":         "65536",
		"NAVFS_BACKEND_PATH":        "/opt/lib/libnavfs.so",
		"NAVFS_BACKEND_DISABLED":    "true",
		"NAVFS_WATCH_BACKOFF":       "250ms",
		"NAVFS_WATCH_POLL_INTERVAL": "5s",
		"NAVFS_WATCH_EVENT_BUFFER":  "64",
		"RATE_LIMIT_RPS":            "500",
		"RATE_LIMIT_BURST":          "1000",
		"RATE_LIMIT_ENABLED":        "false",
	}
	for key, value := range envVars {
		require.NoError(t, os.Setenv(key, value))
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	assert.Equal(t, "/srv/data", cfg.Navigator.Root)
	assert.Equal(t, []string{"/srv/secrets/", "/srv/keys/"}, cfg.Navigator.Denylist)
	assert.Equal(t, 65536, cfg.Navigator.CopyBufferSize)

	assert.Equal(t, "/opt/lib/libnavfs.so", cfg.Backend.Path)
	assert.True(t, cfg.Backend.Disabled)

	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Backoff)
	assert.Equal(t, 5*time.Second, cfg.Watch.PollInterval)
	assert.Equal(t, 64, cfg.Watch.EventBuffer)

	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
}
