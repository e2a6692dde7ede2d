// Package termrender draws view frames on a terminal with lipgloss.
package termrender

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/ixview/internal/render"
	"github.com/diogo/ixview/internal/view"
)

// UnitsPerColumn converts layout units to terminal columns (800 → 80).
const UnitsPerColumn = 10

const (
	avatarColumns  = 10
	minBubbleWidth = 24
	spacingPerLine = 4 // layout units per blank terminal line
)

// Terminal renders frames for a terminal of a given width.
type Terminal struct {
	// Width is the number of columns available; 0 means unbounded.
	Width int
	// Options configures markdown lines. The style follows the color mode
	// unless a non light/dark style was chosen.
	Options render.Options
	// Plain disables colors, borders and markdown rendering.
	Plain bool
}

// New returns a Terminal with default markdown options.
func New(width int) Terminal {
	return Terminal{Width: width, Options: render.DefaultOptions()}
}

// lines converts vertical layout units to blank terminal lines.
func lines(units int) int {
	if units <= 0 {
		return 0
	}
	return (units + spacingPerLine - 1) / spacingPerLine
}

// BubbleWidth returns the outer width of the content bubble for layout.
func (t Terminal) BubbleWidth(layout view.Layout) int {
	width := layout.ContentWidth / UnitsPerColumn
	if t.Width > 0 {
		avail := t.Width - avatarColumns - layout.AvatarMarginRight
		if width > avail {
			width = avail
		}
	}
	if width < minBubbleWidth {
		width = minBubbleWidth
	}
	return width
}

// Render draws one frame: the avatar column and the bubble side by side.
// Foreground colors and the markdown style follow the frame's background.
func (t Terminal) Render(f view.Frame) string {
	mode, theme := frameTheme(f)
	bg := f.Background.Color()
	layout := f.Layout

	bubbleWidth := t.BubbleWidth(layout)
	// Padding is horizontal only: one column per two units.
	padX := (layout.Padding + 1) / 2
	innerWidth := bubbleWidth - 2*padX - 2

	bubble := lipgloss.NewStyle().
		Width(bubbleWidth-2).
		Padding(0, padX)
	if layout.BorderRadius > 0 {
		bubble = bubble.BorderStyle(lipgloss.RoundedBorder())
	} else {
		bubble = bubble.BorderStyle(lipgloss.NormalBorder())
	}
	if !t.Plain {
		bubble = bubble.Background(bg).BorderForeground(theme.Border.Color())
	}

	body := t.renderBody(f.Body, theme, bg, innerWidth, mode)

	avatar := lipgloss.NewStyle().
		Width(avatarColumns).
		MaxWidth(avatarColumns).
		MarginTop(lines(layout.AvatarMarginTop)).
		MarginRight(layout.AvatarMarginRight)
	if !t.Plain {
		avatar = avatar.Foreground(f.Avatar.Color.Color()).Bold(true)
	}
	label := f.Avatar.Glyph + " " + f.Avatar.Label

	return lipgloss.JoinHorizontal(lipgloss.Top,
		avatar.Render(label),
		bubble.Render(body),
	)
}

// frameTheme returns the mode and theme matching the frame's bubble.
func frameTheme(f view.Frame) (render.ColorMode, render.Theme) {
	mode := render.ModeForBackground(f.Background)
	return mode, render.ThemeFor(mode)
}

func (t Terminal) renderBody(b view.Body, theme render.Theme, bg lipgloss.Color, width int, mode render.ColorMode) string {
	var parts []string
	for i := 0; i < lines(b.MarginTop); i++ {
		parts = append(parts, "")
	}
	for _, line := range b.Lines {
		parts = append(parts, t.renderLine(line, theme, bg, width, mode))
		for i := 0; i < lines(line.MarginBottom); i++ {
			parts = append(parts, "")
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (t Terminal) renderLine(line view.Line, theme render.Theme, bg lipgloss.Color, width int, mode render.ColorMode) string {
	if line.Kind == view.KindMarkdown && !t.Plain {
		opts := t.Options.WithWidth(width).WithColorMode(mode)
		return render.MarkdownOrPlain(line.Text, opts)
	}

	style := lipgloss.NewStyle()
	if line.Kind != view.KindRaw {
		style = style.Width(width)
	}
	if t.Plain || (line.Kind == view.KindPlain && line.Tone == view.ToneDefault) {
		return style.Render(line.Text)
	}

	style = style.Background(bg).Foreground(toneColor(line.Tone, theme))
	switch line.Tone {
	case view.ToneLabel, view.ToneError:
		style = style.Bold(true)
	case view.ToneDim:
		style = style.Italic(true)
	}
	return style.Render(line.Text)
}

func toneColor(tone view.Tone, theme render.Theme) lipgloss.Color {
	switch tone {
	case view.ToneDim:
		return theme.TextDim.Color()
	case view.ToneLabel:
		return theme.Primary.Color()
	case view.ToneAccent:
		return theme.Accent.Color()
	case view.ToneSuccess:
		return theme.Success.Color()
	case view.ToneWarning:
		return theme.Warning.Color()
	case view.ToneError:
		return theme.Error.Color()
	}
	return theme.Text.Color()
}

// RenderAll draws frames top to bottom, separated by the row margin.
func (t Terminal) RenderAll(frames []view.Frame) string {
	var sb strings.Builder
	for i, f := range frames {
		sb.WriteString(t.Render(f))
		sb.WriteString("\n")
		if i < len(frames)-1 {
			sb.WriteString(strings.Repeat("\n", lines(f.Layout.RowMarginBottom)))
		}
	}
	return sb.String()
}
