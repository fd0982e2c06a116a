// Package config handles configuration loading and defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Default values.
const (
	DefaultModel    = "gemini-3-flash-preview"
	DefaultLogLevel = "info"
)

// Config holds the full configuration for avo. Values come from the TOML
// config file when present, overridden by environment variables. A .env
// file in the working directory is loaded first so the API key never has
// to live in the shell profile.
type Config struct {
	// DataFile is the SQLite database path. Empty means the default
	// location under the user's data directory.
	DataFile string `toml:"data_file"`

	// APIKey is the Gemini credential. Empty is valid: AI features then
	// degrade to their placeholder behavior.
	APIKey string `toml:"api_key"`

	// Model is the Gemini model used for generation and summaries.
	Model string `toml:"model"`

	// LogLevel is the logrus level name for the log file.
	LogLevel string `toml:"log_level"`
}

// Load reads the config file (if any), applies defaults, and overlays
// environment variables. GEMINI_API_KEY always wins over the file so a
// key can be rotated without editing config.
func Load() (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := &Config{
		Model:    DefaultModel,
		LogLevel: DefaultLogLevel,
	}

	path, err := configPath()
	if err == nil {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, err
			}
		}
	}

	if v := getEnv("GEMINI_API_KEY", ""); v != "" {
		cfg.APIKey = v
	}
	if v := getEnv("AVO_MODEL", ""); v != "" {
		cfg.Model = v
	}
	if v := getEnv("AVO_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("AVO_DATA_FILE", ""); v != "" {
		cfg.DataFile = v
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	return cfg, nil
}

// configPath returns the config file path, honoring XDG_CONFIG_HOME.
func configPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "avo", "config.toml"), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
