package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://rxn.res.ibm.com", cfg.BaseURL)
	assert.Equal(t, 100000, cfg.RateLimit.MaxPerMinute)
	assert.False(t, cfg.RateLimit.Wait)

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, timeout)

	interval, err := cfg.MinIntervalDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Microsecond, interval)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_key: file-key
base_url: https://rxn.example.com
project_id: proj-1
timeout: 2m
rate_limit:
  max_per_minute: 120
  min_interval: 500ms
  wait: true
logging:
  level: debug
  development: true
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "https://rxn.example.com", cfg.BaseURL)
	assert.Equal(t, "proj-1", cfg.ProjectID)
	assert.Equal(t, 120, cfg.RateLimit.MaxPerMinute)
	assert.True(t, cfg.RateLimit.Wait)
	assert.Equal(t, "debug", cfg.Logging.Level)

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, timeout)

	interval, err := cfg.MinIntervalDuration()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, interval)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().BaseURL, cfg.BaseURL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env wins over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_key: file-key\n"), 0o600))
		t.Setenv("RXN4CHEMISTRY_API_KEY", "env-key")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.APIKey)
	})

	t.Run("base url and project id", func(t *testing.T) {
		t.Setenv("RXN4CHEMISTRY_BASE_URL", "https://other.example.com")
		t.Setenv("RXN4CHEMISTRY_PROJECT_ID", "env-proj")

		cfg := Default()
		cfg.applyEnvOverrides()

		assert.Equal(t, "https://other.example.com", cfg.BaseURL)
		assert.Equal(t, "env-proj", cfg.ProjectID)
	})

	t.Run("empty env leaves config untouched", func(t *testing.T) {
		t.Setenv("RXN4CHEMISTRY_API_KEY", "")

		cfg := Default()
		cfg.APIKey = "kept"
		cfg.applyEnvOverrides()

		assert.Equal(t, "kept", cfg.APIKey)
	})
}

func TestValidate(t *testing.T) {
	t.Run("api key required", func(t *testing.T) {
		cfg := Default()
		assert.Error(t, cfg.Validate())

		cfg.APIKey = "key"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("bad durations rejected", func(t *testing.T) {
		cfg := Default()
		cfg.APIKey = "key"
		cfg.Timeout = "soon"
		assert.Error(t, cfg.Validate())

		cfg = Default()
		cfg.APIKey = "key"
		cfg.RateLimit.MinInterval = "often"
		assert.Error(t, cfg.Validate())
	})
}
