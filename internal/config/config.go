// Package config handles the user configuration for ixview.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/diogo/ixview/internal/errors"
)

// Environment variables read by ixview.
const (
	EnvHome      = "IXVIEW_HOME"       // overrides the config directory
	EnvColorMode = "IXVIEW_COLOR_MODE" // overrides color_mode
)

// Accepted values for the enumerated settings.
var (
	ColorModes      = []string{"auto", "light", "dark"}
	MissingPolicies = []string{"lenient", "report", "visible"}
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // glamour style name or path to JSON style; empty follows color_mode
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// ColorMode is "light", "dark" or "auto" (detect from the terminal).
	ColorMode string `json:"color_mode"`
	// Width is the terminal width in columns; 0 uses the terminal's width.
	Width int `json:"width"`
	// MissingPolicy decides what happens when a message lacks content,
	// a type, or a payload field its view needs: "lenient", "report" or
	// "visible".
	MissingPolicy   string         `json:"missing_policy"`
	Verbose         bool           `json:"verbose"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	LogFile         string         `json:"log_file,omitempty"` // viewer log destination
	Markdown        MarkdownConfig `json:"markdown,omitzero"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		ColorMode:     "auto",
		MissingPolicy: "lenient",
		Markdown:      DefaultMarkdownConfig(),
	}
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if !slices.Contains(ColorModes, strings.ToLower(c.ColorMode)) {
		return errors.NewConfigError("color_mode", c.ColorMode)
	}
	if !slices.Contains(MissingPolicies, strings.ToLower(c.MissingPolicy)) {
		return errors.NewConfigError("missing_policy", c.MissingPolicy)
	}
	if c.Width < 0 {
		return errors.NewConfigError("width", fmt.Sprint(c.Width))
	}
	return nil
}

// ApplyEnv overlays environment overrides onto c.
func (c Config) ApplyEnv() Config {
	if mode := os.Getenv(EnvColorMode); mode != "" {
		c.ColorMode = mode
	}
	return c
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return filepath.Abs(dir)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ixview"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file path, defaulting to ixview.log in the
// config directory.
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "ixview.log"), nil
}

// LoadConfig loads the configuration from disk and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.ApplyEnv(), nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg = cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("config file %s: %w", configPath, err)
	}
	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.json")
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
