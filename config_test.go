package gdl

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "./downloads", cfg.OutputDir)
	assert.Equal(t, 32*1024, cfg.ChunkSize)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryWaitMin)
	assert.Equal(t, 30*time.Second, cfg.RetryWaitMax)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.VerifySSL)
	assert.True(t, cfg.AutoCreateDirs)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdl_config.json")
	content := `{
		"output_dir": "/tmp/gdl-out",
		"max_retries": 5,
		"retry_wait_min": "2s",
		"timeout": "10s",
		"verify_ssl": false,
		"log_level": "debug"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/gdl-out", cfg.OutputDir)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.RetryWaitMin)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.False(t, cfg.VerifySSL)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched keys keep their defaults.
	assert.Equal(t, 32*1024, cfg.ChunkSize)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("GDL_MAX_RETRIES", "7")
	t.Setenv("GDL_TIMEOUT", "5s")
	t.Setenv("GDL_OUTPUT_DIR", "/tmp/env-out")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/env-out", cfg.OutputDir)
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
		{"zero retry wait", func(c *Config) { c.RetryWaitMin = 0 }},
		{"max below min", func(c *Config) { c.RetryWaitMax = c.RetryWaitMin / 2 }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
