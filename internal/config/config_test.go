package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("AVO_MODEL", "")
	t.Setenv("AVO_LOG_LEVEL", "")
	t.Setenv("AVO_DATA_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("log level = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.APIKey != "" {
		t.Errorf("api key = %q, want empty", cfg.APIKey)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	appDir := filepath.Join(dir, "avo")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatal(err)
	}
	file := `api_key = "from-file"
model = "file-model"
`
	if err := os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(file), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("AVO_MODEL", "")
	t.Setenv("AVO_LOG_LEVEL", "")
	t.Setenv("AVO_DATA_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Errorf("api key = %q, want env value", cfg.APIKey)
	}
	if cfg.Model != "file-model" {
		t.Errorf("model = %q, want file value", cfg.Model)
	}
}
