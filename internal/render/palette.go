package render

import "github.com/charmbracelet/lipgloss"

// ColorToken names a palette entry ("gray.100"). Frames carry tokens so they
// stay independent of the output device; the terminal resolves them here.
type ColorToken string

// Palette tokens used by the chat views.
const (
	Gray50    ColorToken = "gray.50"
	Gray100   ColorToken = "gray.100"
	Gray200   ColorToken = "gray.200"
	Gray300   ColorToken = "gray.300"
	Gray400   ColorToken = "gray.400"
	Gray500   ColorToken = "gray.500"
	Gray600   ColorToken = "gray.600"
	Gray700   ColorToken = "gray.700"
	Gray800   ColorToken = "gray.800"
	Gray900   ColorToken = "gray.900"
	Blue300   ColorToken = "blue.300"
	Blue600   ColorToken = "blue.600"
	Green300  ColorToken = "green.300"
	Green600  ColorToken = "green.600"
	Red300    ColorToken = "red.300"
	Red600    ColorToken = "red.600"
	Orange300 ColorToken = "orange.300"
	Orange600 ColorToken = "orange.600"
	Purple300 ColorToken = "purple.300"
	Purple600 ColorToken = "purple.600"
)

var palette = map[ColorToken]lipgloss.Color{
	Gray50:    lipgloss.Color("#F7FAFC"),
	Gray100:   lipgloss.Color("#EDF2F7"),
	Gray200:   lipgloss.Color("#E2E8F0"),
	Gray300:   lipgloss.Color("#CBD5E0"),
	Gray400:   lipgloss.Color("#A0AEC0"),
	Gray500:   lipgloss.Color("#718096"),
	Gray600:   lipgloss.Color("#4A5568"),
	Gray700:   lipgloss.Color("#2D3748"),
	Gray800:   lipgloss.Color("#1A202C"),
	Gray900:   lipgloss.Color("#171923"),
	Blue300:   lipgloss.Color("#90CDF4"),
	Blue600:   lipgloss.Color("#2B6CB0"),
	Green300:  lipgloss.Color("#9AE6B4"),
	Green600:  lipgloss.Color("#2F855A"),
	Red300:    lipgloss.Color("#FEB2B2"),
	Red600:    lipgloss.Color("#C53030"),
	Orange300: lipgloss.Color("#FBD38D"),
	Orange600: lipgloss.Color("#C05621"),
	Purple300: lipgloss.Color("#D6BCFA"),
	Purple600: lipgloss.Color("#6B46C1"),
}

// Color resolves a token. Unknown tokens resolve to the empty color, which
// lipgloss treats as "no color".
func (t ColorToken) Color() lipgloss.Color {
	return palette[t]
}

func (t ColorToken) String() string {
	return string(t)
}

// BubbleBackground is the content bubble background for mode.
func BubbleBackground(mode ColorMode) ColorToken {
	if mode == ColorModeLight {
		return Gray100
	}
	return Gray900
}

// ModeForBackground is the color mode whose bubble uses bg. Backgrounds
// other than gray.100 map to dark.
func ModeForBackground(bg ColorToken) ColorMode {
	if bg == Gray100 {
		return ColorModeLight
	}
	return ColorModeDark
}

// Theme is the set of foreground tokens used inside a bubble.
type Theme struct {
	Mode ColorMode

	Text    ColorToken
	TextDim ColorToken
	Border  ColorToken

	Primary ColorToken
	Success ColorToken
	Warning ColorToken
	Error   ColorToken
	Accent  ColorToken
}

var (
	// LightTheme pairs with the gray.100 bubble.
	LightTheme = Theme{
		Mode:    ColorModeLight,
		Text:    Gray800,
		TextDim: Gray500,
		Border:  Gray300,
		Primary: Blue600,
		Success: Green600,
		Warning: Orange600,
		Error:   Red600,
		Accent:  Purple600,
	}

	// DarkTheme pairs with the gray.900 bubble.
	DarkTheme = Theme{
		Mode:    ColorModeDark,
		Text:    Gray100,
		TextDim: Gray400,
		Border:  Gray700,
		Primary: Blue300,
		Success: Green300,
		Warning: Orange300,
		Error:   Red300,
		Accent:  Purple300,
	}
)

// ThemeFor returns the foreground theme for mode.
func ThemeFor(mode ColorMode) Theme {
	if mode == ColorModeLight {
		return LightTheme
	}
	return DarkTheme
}
