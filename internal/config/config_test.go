package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/diogo/ixview/internal/errors"
)

// useTempHome points the config directory at a fresh temp dir.
func useTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)
	t.Setenv(EnvColorMode, "")
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ColorMode != "auto" {
		t.Errorf("Expected ColorMode 'auto', got '%s'", cfg.ColorMode)
	}
	if cfg.MissingPolicy != "lenient" {
		t.Errorf("Expected MissingPolicy 'lenient', got '%s'", cfg.MissingPolicy)
	}
	if cfg.Width != 0 {
		t.Errorf("Expected Width 0, got %d", cfg.Width)
	}
	if !cfg.Markdown.EnableEmoji || !cfg.Markdown.PreserveNewLines || !cfg.Markdown.TableWrap {
		t.Errorf("unexpected markdown defaults: %+v", cfg.Markdown)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{"light mode", func(c *Config) { c.ColorMode = "light" }, ""},
		{"upper-case dark", func(c *Config) { c.ColorMode = "DARK" }, ""},
		{"bad mode", func(c *Config) { c.ColorMode = "sepia" }, "color_mode"},
		{"report policy", func(c *Config) { c.MissingPolicy = "report" }, ""},
		{"bad policy", func(c *Config) { c.MissingPolicy = "panic" }, "missing_policy"},
		{"negative width", func(c *Config) { c.Width = -1 }, "width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantKey == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var ce *apperrors.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want ConfigError", err)
			}
			if ce.Key != tt.wantKey {
				t.Errorf("ConfigError.Key = %s, want %s", ce.Key, tt.wantKey)
			}
		})
	}
}

func TestGetConfigDirHonorsEnv(t *testing.T) {
	dir := useTempHome(t)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if got != dir {
		t.Errorf("GetConfigDir() = %s, want %s", got, dir)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	if path != filepath.Join(dir, "config.json") {
		t.Errorf("GetConfigPath() = %s", path)
	}
}

func TestGetConfigDirDefault(t *testing.T) {
	t.Setenv(EnvHome, "")

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if !filepath.IsAbs(dir) || filepath.Base(dir) != ".ixview" {
		t.Errorf("GetConfigDir() = %s", dir)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	useTempHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := useTempHome(t)

	cfg := DefaultConfig()
	cfg.ColorMode = "light"
	cfg.Width = 100
	cfg.MissingPolicy = "visible"
	cfg.Markdown.Style = "dracula"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("LoadConfig() = %+v, want %+v", loaded, cfg)
	}
}

func TestConfigJSONOmitsZeroMarkdown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Markdown = MarkdownConfig{}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	if _, ok := fields["markdown"]; ok {
		t.Errorf("zero markdown section should be omitted: %s", data)
	}

	cfg.Markdown.Style = "dark"
	data, err = json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	if _, ok := fields["markdown"]; !ok {
		t.Errorf("markdown section missing: %s", data)
	}
}

func TestSaveConfigRejectsInvalid(t *testing.T) {
	useTempHome(t)

	cfg := DefaultConfig()
	cfg.MissingPolicy = "nope"
	if err := SaveConfig(cfg); !errors.Is(err, apperrors.ErrInvalidConfig) {
		t.Errorf("SaveConfig() = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	useTempHome(t)
	t.Setenv(EnvColorMode, "dark")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.ColorMode != "dark" {
		t.Errorf("ColorMode = %s, want dark", cfg.ColorMode)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	dir := useTempHome(t)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg != DefaultConfig() {
		t.Error("expected defaults on parse error")
	}
}

func TestLoadConfigInvalidValue(t *testing.T) {
	dir := useTempHome(t)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"color_mode":"sepia","missing_policy":"lenient"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig()
	if !errors.Is(err, apperrors.ErrInvalidConfig) {
		t.Errorf("LoadConfig() = %v, want ErrInvalidConfig", err)
	}
}

func TestGetLogPath(t *testing.T) {
	dir := useTempHome(t)

	path, err := GetLogPath(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "ixview.log") {
		t.Errorf("GetLogPath() = %s", path)
	}

	cfg := DefaultConfig()
	cfg.LogFile = "/tmp/custom.log"
	if path, _ := GetLogPath(cfg); path != "/tmp/custom.log" {
		t.Errorf("GetLogPath() = %s, want /tmp/custom.log", path)
	}
}
