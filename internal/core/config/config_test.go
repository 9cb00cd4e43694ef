package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("POLL_INTERVAL_SECONDS")

	os.Setenv("REMOTE_API_URL", "https://retailops.test")
	defer os.Unsetenv("REMOTE_API_URL")

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 30, cfg.PollIntervalSeconds)
	assert.Equal(t, "demo", cfg.RemoteAPI.UserID)
	assert.Equal(t, "Purchasing", cfg.RemoteAPI.UserRole)
	assert.Equal(t, 250, cfg.Search.DebounceMillis)
	assert.Equal(t, 30, cfg.Search.CacheTTLSeconds)
	assert.Empty(t, cfg.Cache.RedisURL)
}

// TestLoad_Overrides verifies that env vars override defaults.
func TestLoad_Overrides(t *testing.T) {
	os.Setenv("REMOTE_API_URL", "https://retailops.test")
	os.Setenv("REMOTE_API_TOKEN", "secret-token")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("POLL_INTERVAL_SECONDS", "5")
	os.Setenv("REDIS_URL", "redis://localhost:6379")
	os.Setenv("SEARCH_DEBOUNCE_MS", "100")
	defer func() {
		os.Unsetenv("REMOTE_API_URL")
		os.Unsetenv("REMOTE_API_TOKEN")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("POLL_INTERVAL_SECONDS")
		os.Unsetenv("REDIS_URL")
		os.Unsetenv("SEARCH_DEBOUNCE_MS")
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 5, cfg.PollIntervalSeconds)
	assert.Equal(t, "secret-token", cfg.RemoteAPI.Token)
	assert.Equal(t, "redis://localhost:6379", cfg.Cache.RedisURL)
	assert.Equal(t, 100, cfg.Search.DebounceMillis)
}

// TestLoad_MissingRequired verifies that a missing required value fails loading.
func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("REMOTE_API_URL")

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "REMOTE_API_URL")
}
