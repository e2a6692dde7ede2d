package render

import (
	"errors"
	"testing"

	apperrors "github.com/diogo/ixview/internal/errors"
)

func TestBubbleBackground(t *testing.T) {
	if got := BubbleBackground(ColorModeLight); got != Gray100 {
		t.Errorf("light background = %s, want gray.100", got)
	}
	if got := BubbleBackground(ColorModeDark); got != Gray900 {
		t.Errorf("dark background = %s, want gray.900", got)
	}
}

func TestModeForBackground(t *testing.T) {
	for _, mode := range []ColorMode{ColorModeLight, ColorModeDark} {
		if got := ModeForBackground(BubbleBackground(mode)); got != mode {
			t.Errorf("ModeForBackground(%s) = %s, want %s", BubbleBackground(mode), got, mode)
		}
	}
	if got := ModeForBackground(""); got != ColorModeDark {
		t.Errorf("ModeForBackground(\"\") = %s, want dark", got)
	}
}

func TestTokensResolve(t *testing.T) {
	tests := []struct {
		token ColorToken
		want  string
	}{
		{Gray100, "#EDF2F7"},
		{Gray900, "#171923"},
		{"unknown.500", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.token), func(t *testing.T) {
			if got := string(tt.token.Color()); got != tt.want {
				t.Errorf("Color() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestThemesUseKnownTokens(t *testing.T) {
	for _, theme := range []Theme{LightTheme, DarkTheme} {
		tokens := []ColorToken{
			theme.Text, theme.TextDim, theme.Border, theme.Primary,
			theme.Success, theme.Warning, theme.Error, theme.Accent,
		}
		for _, tok := range tokens {
			if tok.Color() == "" {
				t.Errorf("%s theme uses unresolved token %q", theme.Mode, tok)
			}
		}
	}

	if ThemeFor(ColorModeLight).Mode != ColorModeLight {
		t.Error("ThemeFor(light) returned wrong theme")
	}
	if ThemeFor(ColorModeDark).Mode != ColorModeDark {
		t.Error("ThemeFor(dark) returned wrong theme")
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"light", ColorModeLight, false},
		{"Dark", ColorModeDark, false},
		{" light ", ColorModeLight, false},
		{"auto", "", true},
		{"sepia", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidConfig) {
					t.Errorf("ParseColorMode(%q) error = %v, want ErrInvalidConfig", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseColorMode(%q) = %s, %v", tt.in, got, err)
			}
		})
	}
}

func TestResolveColorMode(t *testing.T) {
	for _, in := range []string{"", "auto", "AUTO"} {
		got, err := ResolveColorMode(in)
		if err != nil {
			t.Fatalf("ResolveColorMode(%q) error = %v", in, err)
		}
		if got != ColorModeLight && got != ColorModeDark {
			t.Errorf("ResolveColorMode(%q) = %q", in, got)
		}
	}

	if got, _ := ResolveColorMode("light"); got != ColorModeLight {
		t.Errorf("ResolveColorMode(light) = %s", got)
	}
	if _, err := ResolveColorMode("nope"); err == nil {
		t.Error("expected error for invalid mode")
	}
}

func TestColorModeToggle(t *testing.T) {
	if ColorModeLight.Toggle() != ColorModeDark {
		t.Error("light should toggle to dark")
	}
	if ColorModeDark.Toggle() != ColorModeLight {
		t.Error("dark should toggle to light")
	}
	if ColorModeLight.MarkdownStyle() != StyleLight || ColorModeDark.MarkdownStyle() != StyleDark {
		t.Error("markdown style should follow the mode")
	}
}
