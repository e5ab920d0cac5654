package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.Server.BaseURL)
	assert.Equal(t, 15000, cfg.Server.TimeoutMs)
	assert.Equal(t, 60000, cfg.Server.GenerateTimeoutMs)
	assert.Empty(t, cfg.DB.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SCOPEFLOW_API_URL", "http://planning.internal:9000")
	t.Setenv("SCOPEFLOW_TIMEOUT_MS", "5000")
	t.Setenv("SCOPEFLOW_GENERATE_TIMEOUT_MS", "120000")
	t.Setenv("SCOPEFLOW_DB", "/tmp/sf.db")
	t.Setenv("SCOPEFLOW_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://planning.internal:9000", cfg.Server.BaseURL)
	assert.Equal(t, 5000, cfg.Server.TimeoutMs)
	assert.Equal(t, 120000, cfg.Server.GenerateTimeoutMs)
	assert.Equal(t, "/tmp/sf.db", cfg.DB.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidTimeoutEnvIgnored(t *testing.T) {
	t.Setenv("SCOPEFLOW_TIMEOUT_MS", "soon")
	t.Setenv("SCOPEFLOW_GENERATE_TIMEOUT_MS", "-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15000, cfg.Server.TimeoutMs)
	assert.Equal(t, 60000, cfg.Server.GenerateTimeoutMs)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `server:
  base_url: http://from-file:8000
  timeout_ms: 2000
log:
  level: info
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("SCOPEFLOW_CONFIG", path)
	t.Setenv("SCOPEFLOW_API_URL", "http://from-env:8000")

	cfg, err := Load()
	require.NoError(t, err)

	// Env wins over file, file wins over defaults.
	assert.Equal(t, "http://from-env:8000", cfg.Server.BaseURL)
	assert.Equal(t, 2000, cfg.Server.TimeoutMs)
	assert.Equal(t, 60000, cfg.Server.GenerateTimeoutMs)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("SCOPEFLOW_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestAPIConfig(t *testing.T) {
	cfg := Default()
	api := cfg.APIConfig()
	assert.Equal(t, "http://localhost:8000", api.BaseURL)
	assert.Equal(t, 15*time.Second, api.Timeout)
	assert.Equal(t, time.Minute, api.GenerateTimeout)
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"loud":  slog.LevelWarn,
		"":      slog.LevelWarn,
	}
	for in, want := range cases {
		cfg := Config{Log: LogConfig{Level: in}}
		assert.Equal(t, want, cfg.LogLevel(), "level %q", in)
	}
}
