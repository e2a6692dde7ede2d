package transcript

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/diogo/ixview/internal/errors"
	"github.com/diogo/ixview/internal/models"
	"github.com/diogo/ixview/internal/render"
	"github.com/diogo/ixview/internal/view"
)

// ExportFormat represents the format for exporting transcripts
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ParseExportFormat parses an export format name ("md" is accepted).
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return ExportFormatMarkdown, nil
	case "json":
		return ExportFormatJSON, nil
	}
	return "", apperrors.NewConfigError("format", s)
}

// ExportOptions configures how transcripts are exported
type ExportOptions struct {
	Format ExportFormat
	Title  string
	// Dispatcher renders messages for markdown export. Nil uses a lenient
	// default dispatcher.
	Dispatcher *view.Dispatcher
}

// DefaultExportOptions returns sensible defaults for export
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format: ExportFormatMarkdown,
		Title:  "Transcript",
	}
}

// Export encodes msgs in the requested format.
func Export(msgs []models.Message, opts ExportOptions) ([]byte, error) {
	switch opts.Format {
	case ExportFormatMarkdown, "":
		md, err := ExportToMarkdown(msgs, opts)
		if err != nil {
			return nil, err
		}
		return []byte(md), nil
	case ExportFormatJSON:
		return ExportToJSON(msgs, opts)
	}
	return nil, apperrors.NewConfigError("format", string(opts.Format))
}

// ExportToMarkdown renders each message through the dispatcher and writes
// the frame lines as markdown. Raw lines become fenced code blocks.
func ExportToMarkdown(msgs []models.Message, opts ExportOptions) (string, error) {
	d := opts.Dispatcher
	if d == nil {
		d = view.NewDispatcher()
	}
	frames, err := d.RenderAll(msgs, render.ColorModeLight)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if opts.Title != "" {
		sb.WriteString("# ")
		sb.WriteString(opts.Title)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "**Messages:** %d\n\n---\n\n", len(frames))

	for i, f := range frames {
		sb.WriteString("## ")
		sb.WriteString(f.Avatar.Label)
		if !f.CreatedAt.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(f.CreatedAt.Format("15:04:05"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")

		for _, line := range f.Body.Lines {
			writeMarkdownLine(&sb, line)
		}

		if i < len(frames)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return sb.String(), nil
}

func writeMarkdownLine(sb *strings.Builder, line view.Line) {
	switch {
	case line.Kind == view.KindRaw:
		sb.WriteString("```\n")
		sb.WriteString(line.Text)
		if !strings.HasSuffix(line.Text, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("```\n\n")
	case line.Tone == view.ToneLabel:
		sb.WriteString("**")
		sb.WriteString(line.Text)
		sb.WriteString("**\n\n")
	default:
		sb.WriteString(line.Text)
		sb.WriteString("\n\n")
	}
}

// ExportToJSON writes the messages in the {"messages": [...]} shape that
// Load reads back.
func ExportToJSON(msgs []models.Message, opts ExportOptions) ([]byte, error) {
	type exportTranscript struct {
		Title    string           `json:"title,omitempty"`
		Messages []models.Message `json:"messages"`
	}

	if msgs == nil {
		msgs = []models.Message{}
	}
	data, err := json.MarshalIndent(exportTranscript{Title: opts.Title, Messages: msgs}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode transcript: %w", err)
	}
	return data, nil
}
