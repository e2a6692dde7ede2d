// Package view turns chat messages into device-independent frames: the
// content-type dispatch, the avatar + bubble layout and the leaf views.
package view

import (
	"strings"
	"time"

	"github.com/diogo/ixview/internal/models"
	"github.com/diogo/ixview/internal/render"
)

// Name identifies the view selected for a message.
type Name string

// Views, one per known content type plus the three non-variant views.
const (
	ViewAssistant       Name = "AssistantContent"
	ViewAutonomousMode  Name = "AutonomousModeContent"
	ViewAuthorize       Name = "AuthorizeContent"
	ViewAuthRequest     Name = "AuthRequestContent"
	ViewExecute         Name = "ExecuteContent"
	ViewExecuteError    Name = "ExecuteErrorContent"
	ViewFeedback        Name = "FeedbackContent"
	ViewFeedbackRequest Name = "FeedbackRequestContent"
	ViewThink           Name = "ThinkContent"
	ViewThought         Name = "ThoughtContent"
	ViewSystem          Name = "SystemContent"

	// ViewPlainText renders untyped content as raw text.
	ViewPlainText Name = "PlainText"
	// ViewFallback renders content whose type is not recognized.
	ViewFallback Name = "Fallback"
	// ViewError renders a message that could not be rendered.
	ViewError Name = "RenderError"
)

// Layout holds the fixed geometry of a message row, in layout units.
type Layout struct {
	RowMarginBottom   int
	AvatarMarginTop   int
	AvatarMarginRight int
	ContentWidth      int
	BorderRadius      int
	Padding           int
}

// DefaultLayout returns the standard chat row geometry.
func DefaultLayout() Layout {
	return Layout{
		RowMarginBottom:   4,
		AvatarMarginTop:   5,
		AvatarMarginRight: 3,
		ContentWidth:      800,
		BorderRadius:      8,
		Padding:           3,
	}
}

// Kind tells the output device how to treat a line's text.
type Kind int

const (
	// KindText is styled prose.
	KindText Kind = iota
	// KindRaw is shown verbatim, whitespace and line breaks preserved.
	KindRaw
	// KindMarkdown is markdown source.
	KindMarkdown
	// KindPlain is unstyled text.
	KindPlain
)

// Tone selects the foreground color of a line from the active theme.
type Tone int

const (
	ToneDefault Tone = iota
	ToneDim
	ToneLabel
	ToneAccent
	ToneSuccess
	ToneWarning
	ToneError
)

// Line is one row of a view's output.
type Line struct {
	Kind         Kind
	Tone         Tone
	Text         string
	MarginBottom int
}

// Body is the output of a leaf view: a column of lines.
type Body struct {
	MarginTop int
	Lines     []Line
}

// Frame is the rendered form of one message. Only Background depends on the
// color mode.
type Frame struct {
	MessageID  string
	CreatedAt  time.Time
	Avatar     Avatar
	Layout     Layout
	Background render.ColorToken
	View       Name
	Content    *models.Content
	Body       Body
}

// Text returns the frame as plain text: the avatar label followed by the
// body lines.
func (f Frame) Text() string {
	var sb strings.Builder
	sb.WriteString(f.Avatar.Label)
	sb.WriteString(":\n")
	for _, line := range f.Body.Lines {
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Texts returns the text of every body line.
func (f Frame) Texts() []string {
	out := make([]string, len(f.Body.Lines))
	for i, line := range f.Body.Lines {
		out[i] = line.Text
	}
	return out
}
