package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/avelise/scopeflow/internal/api"
	"gopkg.in/yaml.v3"
)

// Config holds all client configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	BaseURL           string `yaml:"base_url"`
	TimeoutMs         int    `yaml:"timeout_ms"`
	GenerateTimeoutMs int    `yaml:"generate_timeout_ms"`
}

type DBConfig struct {
	// Path of the local sidecar database. Empty means ~/.scopeflow/scopeflow.db.
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			BaseURL:           "http://localhost:8000",
			TimeoutMs:         15000,
			GenerateTimeoutMs: 60000,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Load reads configuration from an optional YAML file (SCOPEFLOW_CONFIG)
// and environment variables, falling back to defaults for unset values.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("SCOPEFLOW_CONFIG"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("SCOPEFLOW_API_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("SCOPEFLOW_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.TimeoutMs = n
		}
	}
	if v := os.Getenv("SCOPEFLOW_GENERATE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Server.GenerateTimeoutMs = n
		}
	}
	if v := os.Getenv("SCOPEFLOW_DB"); v != "" {
		cfg.DB.Path = v
	}
	if v := os.Getenv("SCOPEFLOW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// APIConfig maps the server section onto the gateway's settings.
func (c Config) APIConfig() api.Config {
	return api.Config{
		BaseURL:         c.Server.BaseURL,
		Timeout:         time.Duration(c.Server.TimeoutMs) * time.Millisecond,
		GenerateTimeout: time.Duration(c.Server.GenerateTimeoutMs) * time.Millisecond,
	}
}

// LogLevel parses the configured level, defaulting to warn.
func (c Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
