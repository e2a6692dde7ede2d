package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/ixview/internal/errors"
)

// ColorMode is the two-valued theme setting. It only affects background and
// foreground colors, never which view renders a message.
type ColorMode string

const (
	ColorModeLight ColorMode = "light"
	ColorModeDark  ColorMode = "dark"
)

// ColorModeAuto asks ResolveColorMode to detect the terminal background.
const ColorModeAuto = "auto"

// ParseColorMode parses "light" or "dark" (case-insensitive).
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case ColorModeLight:
		return ColorModeLight, nil
	case ColorModeDark:
		return ColorModeDark, nil
	}
	return "", errors.NewConfigError("color_mode", s)
}

// ResolveColorMode parses s, treating "" and "auto" as a request to detect
// the mode from the terminal.
func ResolveColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", ColorModeAuto:
		return DetectColorMode(), nil
	}
	return ParseColorMode(s)
}

// DetectColorMode queries the terminal background through lipgloss.
func DetectColorMode() ColorMode {
	if lipgloss.HasDarkBackground() {
		return ColorModeDark
	}
	return ColorModeLight
}

// Toggle returns the other mode.
func (m ColorMode) Toggle() ColorMode {
	if m == ColorModeDark {
		return ColorModeLight
	}
	return ColorModeDark
}

// MarkdownStyle returns the glamour standard style matching the mode.
func (m ColorMode) MarkdownStyle() string {
	if m == ColorModeLight {
		return StyleLight
	}
	return StyleDark
}

func (m ColorMode) String() string {
	return string(m)
}
