package view

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/diogo/ixview/internal/models"
)

// renderFunc is a leaf view. It reads the fields it needs from c and never
// mutates it. Missing fields read as empty strings.
type renderFunc func(c *models.Content) Body

var leafViews = map[Name]renderFunc{
	ViewAssistant:       assistantView,
	ViewAutonomousMode:  autonomousModeView,
	ViewAuthorize:       authorizeView,
	ViewAuthRequest:     authRequestView,
	ViewExecute:         executeView,
	ViewExecuteError:    executeErrorView,
	ViewFeedback:        feedbackView,
	ViewFeedbackRequest: feedbackRequestView,
	ViewThink:           thinkView,
	ViewThought:         thoughtView,
	ViewSystem:          systemView,
	ViewPlainText:       plainTextView,
	ViewFallback:        plainTextView,
}

func text(s string) Line { return Line{Kind: KindText, Text: s} }
func raw(s string) Line { return Line{Kind: KindRaw, Text: s} }
func markdown(s string) Line { return Line{Kind: KindMarkdown, Text: s} }

func label(s string) Line {
	return Line{Kind: KindText, Tone: ToneLabel, Text: s}
}

// assistantView renders a COMMAND: the agent's thoughts followed by the
// command it chose.
func assistantView(c *models.Content) Body {
	var lines []Line

	thoughts := c.Get("thoughts")
	if s := thoughts.Get("text").String(); s != "" {
		lines = append(lines, markdown(s))
	}
	if s := thoughts.Get("reasoning").String(); s != "" {
		lines = append(lines, label("Reasoning"), markdown(s))
	}
	if plan := planMarkdown(thoughts.Get("plan")); plan != "" {
		lines = append(lines, label("Plan"), markdown(plan))
	}
	if s := thoughts.Get("criticism").String(); s != "" {
		lines = append(lines, label("Criticism"), markdown(s))
	}
	if s := thoughts.Get("speak").String(); s != "" {
		lines = append(lines, Line{Kind: KindText, Tone: ToneAccent, Text: s})
	}

	lines = append(lines, label("Command"), raw(commandSignature(c.Get("command"))))
	return Body{Lines: lines}
}

// planMarkdown renders a plan given either as a list or as a single string.
func planMarkdown(plan gjson.Result) string {
	if !plan.IsArray() {
		return plan.String()
	}
	var sb strings.Builder
	plan.ForEach(func(_, step gjson.Result) bool {
		sb.WriteString("- ")
		sb.WriteString(step.String())
		sb.WriteString("\n")
		return true
	})
	return strings.TrimSuffix(sb.String(), "\n")
}

// commandSignature formats a command as name(key=value, ...), keeping the
// argument order of the payload. Values are shown as their JSON source.
func commandSignature(cmd gjson.Result) string {
	args := make([]string, 0)
	cmd.Get("args").ForEach(func(key, value gjson.Result) bool {
		args = append(args, key.String()+"="+value.Raw)
		return true
	})
	return fmt.Sprintf("%s(%s)", cmd.Get("name").String(), strings.Join(args, ", "))
}

func autonomousModeView(c *models.Content) Body {
	state := "disabled"
	if c.Get("enabled").Bool() {
		state = "enabled"
	}
	return Body{Lines: []Line{
		{Kind: KindText, Tone: ToneWarning, Text: "Autonomous mode " + state + "."},
	}}
}

func authorizeView(c *models.Content) Body {
	return Body{Lines: []Line{
		{Kind: KindText, Tone: ToneSuccess, Text: fmt.Sprintf(
			"Authorized %s command(s) for message_id=%s.", c.Text("n"), c.Text("message_id"))},
	}}
}

func authRequestView(c *models.Content) Body {
	lines := []Line{
		{Kind: KindText, Tone: ToneWarning, Text: fmt.Sprintf(
			"Authorization requested for command message_id=%s.", c.Text("message_id"))},
	}
	if cmd := c.Get("command"); cmd.Exists() {
		lines = append(lines, raw(commandSignature(cmd)))
	}
	return Body{Lines: lines}
}

// executeView renders an EXECUTED content: the command's message id and its
// output, verbatim.
func executeView(c *models.Content) Body {
	return Body{
		MarginTop: 4,
		Lines: []Line{
			{Kind: KindText, Text: fmt.Sprintf("Executed command message_id=%s.", c.Text("message_id")), MarginBottom: 2},
			raw(c.Text("output")),
		},
	}
}

func executeErrorView(c *models.Content) Body {
	return Body{
		MarginTop: 4,
		Lines: []Line{
			{Kind: KindText, Tone: ToneError, Text: fmt.Sprintf("Error executing command message_id=%s.", c.Text("message_id")), MarginBottom: 2},
			label(c.Text("error_type")),
			raw(c.Text("text")),
		},
	}
}

func feedbackView(c *models.Content) Body {
	return Body{Lines: []Line{text(c.Text("feedback"))}}
}

func feedbackRequestView(c *models.Content) Body {
	return Body{Lines: []Line{
		label("Feedback requested"),
		text(c.Text("question")),
	}}
}

func thinkView(c *models.Content) Body {
	lines := []Line{{Kind: KindText, Tone: ToneDim, Text: "Thinking..."}}

	input := c.Get("input")
	if input.IsObject() {
		input.ForEach(func(key, value gjson.Result) bool {
			lines = append(lines, Line{Kind: KindRaw, Tone: ToneDim, Text: key.String() + ": " + value.String()})
			return true
		})
	} else if s := input.String(); s != "" {
		lines = append(lines, Line{Kind: KindRaw, Tone: ToneDim, Text: s})
	}
	return Body{Lines: lines}
}

func thoughtView(c *models.Content) Body {
	msg := fmt.Sprintf("Thought for %ss", c.Text("runtime"))
	if tokens := c.Get("usage.total_tokens"); tokens.Exists() {
		msg += fmt.Sprintf(" (%s tokens)", tokens.String())
	}
	return Body{Lines: []Line{{Kind: KindText, Tone: ToneDim, Text: msg + "."}}}
}

func systemView(c *models.Content) Body {
	return Body{Lines: []Line{text(c.Message())}}
}

// plainTextView renders content.message with no styling. It serves both
// untyped content and the fallback for unknown types.
func plainTextView(c *models.Content) Body {
	return Body{Lines: []Line{{Kind: KindPlain, Text: c.Message()}}}
}

// errorView renders a message that failed a missing-data check.
func errorView(problem string) Body {
	return Body{Lines: []Line{
		{Kind: KindText, Tone: ToneError, Text: "Unable to render message.", MarginBottom: 2},
		{Kind: KindPlain, Tone: ToneDim, Text: problem},
	}}
}
