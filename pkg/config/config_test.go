package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 40, config.Search.Limit)
	assert.Equal(t, 0, config.Search.Offset)
	assert.Equal(t, MaxPerPage, config.Search.MaxPerPage)
	assert.Equal(t, 10*time.Second, config.Request.Timeout)
	assert.Equal(t, 2, config.Retry.MaxAttempts)
	assert.Equal(t, 2000*time.Millisecond, config.Retry.Delay)
	assert.Equal(t, DefaultBaseURL, config.Pexels.BaseURL)
	assert.Equal(t, 0, config.RateLimit.RequestsPerMinute)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "env-api-key")
	t.Setenv("PEXELSEARCH_LIMIT", "120")
	t.Setenv("PEXELSEARCH_OFFSET", "5")
	t.Setenv("PEXELSEARCH_TIMEOUT", "3s")
	t.Setenv("PEXELSEARCH_RETRY_ATTEMPTS", "4")
	t.Setenv("PEXELSEARCH_RETRY_DELAY", "250ms")
	t.Setenv("PEXELSEARCH_LOG_LEVEL", "debug")

	config := DefaultConfig()
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, "env-api-key", config.Pexels.APIKey)
	assert.Equal(t, 120, config.Search.Limit)
	assert.Equal(t, 5, config.Search.Offset)
	assert.Equal(t, 3*time.Second, config.Request.Timeout)
	assert.Equal(t, 4, config.Retry.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, config.Retry.Delay)
	assert.Equal(t, "debug", config.Logging.Level)

	// Unset variables keep their defaults
	assert.Equal(t, DefaultBaseURL, config.Pexels.BaseURL)
	assert.Equal(t, MaxPerPage, config.Search.MaxPerPage)
}

func TestLoadFromEnvInvalidValue(t *testing.T) {
	t.Setenv("PEXELSEARCH_LIMIT", "forty")

	config := DefaultConfig()
	assert.Error(t, config.LoadFromEnv())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := DefaultConfig()
		c.Pexels.APIKey = "test-key"
		return c
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"zero limit is allowed", func(c *Config) { c.Search.Limit = 0 }, false},
		{"missing API key", func(c *Config) { c.Pexels.APIKey = "" }, true},
		{"missing base URL", func(c *Config) { c.Pexels.BaseURL = "" }, true},
		{"negative limit", func(c *Config) { c.Search.Limit = -1 }, true},
		{"negative offset", func(c *Config) { c.Search.Offset = -3 }, true},
		{"zero max per page", func(c *Config) { c.Search.MaxPerPage = 0 }, true},
		{"max per page above API maximum", func(c *Config) { c.Search.MaxPerPage = 80 }, true},
		{"zero timeout", func(c *Config) { c.Request.Timeout = 0 }, true},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, true},
		{"negative delay", func(c *Config) { c.Retry.Delay = -time.Second }, true},
		{"pacing without burst", func(c *Config) {
			c.RateLimit.RequestsPerMinute = 30
			c.RateLimit.Burst = 0
		}, true},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := DefaultConfig()
	c.Search.Limit = -1
	c.Request.Timeout = 0

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Pexels API key is required")
	assert.Contains(t, err.Error(), "limit cannot be negative")
	assert.Contains(t, err.Error(), "request timeout must be positive")
}

func TestSaveAndLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := DefaultConfig()
	original.Pexels.APIKey = "file-key"
	original.Search.Limit = 75
	original.Retry.Delay = 500 * time.Millisecond
	require.NoError(t, original.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, "file-key", loaded.Pexels.APIKey)
	assert.Equal(t, 75, loaded.Search.Limit)
	assert.Equal(t, 500*time.Millisecond, loaded.Retry.Delay)
}

func TestLoadFromFileErrors(t *testing.T) {
	config := DefaultConfig()
	assert.Error(t, config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("search: [unclosed"), 0600))
	assert.Error(t, config.LoadFromFile(bad))
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()
	config.MergeCommandLineFlags(map[string]interface{}{
		"api-key":      "flag-key",
		"limit":        0,
		"offset":       12,
		"timeout":      4 * time.Second,
		"max-attempts": 3,
		"retry-delay":  100 * time.Millisecond,
		"log-level":    "warn",
	})

	assert.Equal(t, "flag-key", config.Pexels.APIKey)
	assert.Equal(t, 0, config.Search.Limit)
	assert.Equal(t, 12, config.Search.Offset)
	assert.Equal(t, 4*time.Second, config.Request.Timeout)
	assert.Equal(t, 3, config.Retry.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, config.Retry.Delay)
	assert.Equal(t, "warn", config.Logging.Level)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pexels:\n  api_key: from-file\nsearch:\n  limit: 10\n  offset: 2\n"), 0600))

	t.Setenv("PEXELSEARCH_LIMIT", "20")

	config, err := Load(path, map[string]interface{}{"offset": 7})
	require.NoError(t, err)

	assert.Equal(t, "from-file", config.Pexels.APIKey)
	assert.Equal(t, 20, config.Search.Limit, "env overrides file")
	assert.Equal(t, 7, config.Search.Offset, "flags override file")
}

func TestLoadValidationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  limit: 10\n"), 0600))
	t.Setenv("PEXELS_API_KEY", "")

	_, err := Load(path, nil)
	assert.Error(t, err)

	config, err := LoadUnvalidated(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, config.Search.Limit)
}

func TestMasked(t *testing.T) {
	config := DefaultConfig()
	config.Pexels.APIKey = "563492ad6f91700001000001abcdef"

	masked := config.Masked()
	assert.Equal(t, "5634...cdef", masked.Pexels.APIKey)
	assert.Equal(t, "563492ad6f91700001000001abcdef", config.Pexels.APIKey, "original untouched")

	assert.Equal(t, "", MaskSecret(""))
	assert.Equal(t, "********", MaskSecret("short"))
}
