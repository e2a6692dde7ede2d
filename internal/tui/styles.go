// Package tui provides the interactive transcript viewer.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/ixview/internal/errors"
	"github.com/diogo/ixview/internal/render"
)

// Color variables (updated from theme)
var (
	colorBorder  lipgloss.Color
	colorPrimary lipgloss.Color
	colorAccent  lipgloss.Color
	colorWarning lipgloss.Color
	colorError   lipgloss.Color
	colorTextDim lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	// Header panel style
	headerStyle lipgloss.Style

	// Title style for header
	titleStyle lipgloss.Style

	// Subtitle style (file name, mode)
	subtitleStyle lipgloss.Style

	// Hint text style
	hintStyle lipgloss.Style

	// Messages area panel
	messagesAreaStyle lipgloss.Style

	// Status bar styles
	statusBarStyle lipgloss.Style

	// Transient notice (copied, reloaded)
	noticeStyle lipgloss.Style

	// Error style
	errorStyle lipgloss.Style

	// Empty transcript placeholder
	emptyStyle lipgloss.Style
)

func init() {
	UpdateTheme(render.DarkTheme)
}

// UpdateTheme refreshes all styles from theme.
func UpdateTheme(theme render.Theme) {
	colorBorder = theme.Border.Color()
	colorPrimary = theme.Primary.Color()
	colorAccent = theme.Accent.Color()
	colorWarning = theme.Warning.Color()
	colorError = theme.Error.Color()
	colorTextDim = theme.TextDim.Color()

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle()

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	emptyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true).
		Align(lipgloss.Center)
}

// FormatError returns a styled error message with additional context
// extracted from the structured error types.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if ct := errors.GetContentType(err); ct != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Content type: %s", ct)))
	}
	if field := errors.GetField(err); field != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Missing field: %s", field)))
	}
	if path := errors.GetPath(err); path != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  File: %s", path)))
	}

	switch {
	case errors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: transcripts must be JSON, JSONL or YAML with a list of messages"))
	case errors.IsMissingData(err):
		sb.WriteString(dimStyle.Render("\n  Hint: use --missing lenient or --missing visible to render incomplete messages"))
	case errors.IsConfigError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: run 'ixview config show' to inspect the effective configuration"))
	}

	return sb.String()
}

// PrintError prints a styled error message to stderr.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err))
}
