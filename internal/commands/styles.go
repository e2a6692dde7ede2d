package commands

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/ixview/internal/render"
)

// styled colors text with token unless output is plain.
func styled(s *settings, token render.ColorToken, text string) string {
	if s.plain {
		return text
	}
	return lipgloss.NewStyle().Foreground(token.Color()).Render(text)
}
