// Package transcript loads, watches and exports task chat transcripts.
package transcript

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	apperrors "github.com/diogo/ixview/internal/errors"
	"github.com/diogo/ixview/internal/models"
)

// Format is the encoding of a transcript file.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 16 * 1024 * 1024

// messagePaths are the gjson paths probed, in order, for the message list
// of a JSON document whose root is not itself the list.
var messagePaths = []string{
	"messages",
	"data.taskLogMessages",
}

// ParseFormat parses a format name. "yml" and "ndjson" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", apperrors.NewConfigError("format", s)
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", apperrors.NewParseError("cannot infer format: file has no extension", path, 0)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", apperrors.NewParseError(fmt.Sprintf("unsupported extension %q", ext), path, 0)
	}
	return f, nil
}

// Load reads the transcript at path. The format follows the extension.
func Load(path string) ([]models.Message, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return decode(data, format, path)
}

// Decode reads a transcript of the given format from r.
func Decode(r io.Reader, format Format) ([]models.Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return decode(data, format, "")
}

func decode(data []byte, format Format, path string) ([]models.Message, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data, path)
	case FormatJSONL:
		return decodeJSONL(data, path)
	case FormatYAML:
		return decodeYAML(data, path)
	}
	return nil, apperrors.NewConfigError("format", string(format))
}

func decodeJSON(data []byte, path string) ([]models.Message, error) {
	if !gjson.ValidBytes(data) {
		return nil, syntaxError(data, path)
	}
	root := gjson.ParseBytes(data)
	// Result indexes are relative to the root value, which starts after any
	// leading whitespace.
	base := len(data) - len(bytes.TrimLeft(data, " \t\r\n"))

	list := root
	if !root.IsArray() {
		list = gjson.Result{}
		for _, p := range messagePaths {
			if r := root.Get(p); r.IsArray() {
				list = r
				break
			}
		}
	}
	if !list.Exists() {
		return nil, apperrors.NewParseError("no message list found", path, 0)
	}

	var (
		msgs []models.Message
		err  error
	)
	list.ForEach(func(_, item gjson.Result) bool {
		var msg models.Message
		msg, err = messageFromResult(item)
		if err != nil {
			err = apperrors.NewParseError(err.Error(), path, lineAt(data, base+item.Index))
			return false
		}
		msgs = append(msgs, msg)
		return true
	})
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func decodeJSONL(data []byte, path string) ([]models.Message, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var msgs []models.Message
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		if !gjson.ValidBytes(text) {
			return nil, apperrors.NewParseError("invalid JSON", path, line)
		}
		msg, err := messageFromResult(gjson.ParseBytes(text))
		if err != nil {
			return nil, apperrors.NewParseError(err.Error(), path, line)
		}
		msgs = append(msgs, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewParseError(err.Error(), path, line+1)
	}
	return msgs, nil
}

// decodeYAML converts the document to JSON and decodes that, so both
// formats share one message mapping.
func decodeYAML(data []byte, path string) ([]models.Message, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewParseError(err.Error(), path, yamlErrorLine(err))
	}
	if doc == nil {
		return nil, apperrors.NewParseError("empty document", path, 0)
	}
	converted, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.NewParseError(err.Error(), path, 0)
	}
	return decodeJSON(converted, path)
}

// messageFromResult maps one JSON message object. Messages without an id
// get a random one so frames stay addressable.
func messageFromResult(r gjson.Result) (models.Message, error) {
	if !r.IsObject() {
		return models.Message{}, fmt.Errorf("message must be an object, got %s", r.Type)
	}

	msg := models.Message{
		ID:   r.Get("id").String(),
		Role: r.Get("role").String(),
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	if agent := r.Get("agent"); agent.IsObject() {
		msg.Agent = agent.Get("name").String()
	} else {
		msg.Agent = agent.String()
	}

	created := r.Get("created_at")
	if !created.Exists() {
		created = r.Get("createdAt")
	}
	if s := created.String(); s != "" {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return models.Message{}, fmt.Errorf("invalid created_at %q", s)
		}
		msg.CreatedAt = t
	}

	content, err := contentFromResult(r.Get("content"))
	if err != nil {
		return models.Message{}, err
	}
	msg.Content = content
	return msg, nil
}

// contentFromResult accepts a content object, a JSON-encoded object string
// (as GraphQL JSONString fields arrive), or bare text. Bare text becomes an
// untyped content carrying it as its message.
func contentFromResult(r gjson.Result) (*models.Content, error) {
	switch {
	case !r.Exists() || r.Type == gjson.Null:
		return nil, nil
	case r.IsObject():
		return models.ParseContent([]byte(r.Raw))
	case r.Type == gjson.String:
		s := r.String()
		if inner := gjson.Parse(s); gjson.Valid(s) && inner.IsObject() {
			return models.ParseContent([]byte(s))
		}
		data, err := json.Marshal(map[string]string{"message": s})
		if err != nil {
			return nil, err
		}
		return models.ParseContent(data)
	}
	return nil, fmt.Errorf("content must be an object or a string, got %s", r.Type)
}

// syntaxError locates the first JSON syntax error in data.
func syntaxError(data []byte, path string) error {
	var v any
	err := json.Unmarshal(data, &v)
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return apperrors.NewParseError(se.Error(), path, lineAt(data, int(se.Offset)))
	}
	if err != nil {
		return apperrors.NewParseError(err.Error(), path, 0)
	}
	return apperrors.NewParseError("invalid JSON", path, 0)
}

// lineAt returns the 1-based line of byte offset in data.
func lineAt(data []byte, offset int) int {
	if offset > len(data) {
		offset = len(data)
	}
	if offset < 0 {
		offset = 0
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

// yamlErrorLine extracts N from a "yaml: line N: ..." message, or 0.
func yamlErrorLine(err error) int {
	var line int
	msg := err.Error()
	if i := strings.Index(msg, "line "); i >= 0 {
		_, _ = fmt.Sscanf(msg[i:], "line %d", &line)
	}
	return line
}
