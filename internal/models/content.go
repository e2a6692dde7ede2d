// Package models contains the data types shared by the transcript loader and
// the view layer.
package models

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/tidwall/gjson"
)

// ContentType is the discriminator carried in the "type" field of a content.
type ContentType string

// Known content types, in dispatch order.
const (
	ContentCommand         ContentType = "COMMAND"
	ContentAutonomous      ContentType = "AUTONOMOUS"
	ContentAuthorize       ContentType = "AUTHORIZE"
	ContentAuthRequest     ContentType = "AUTH_REQUEST"
	ContentExecuted        ContentType = "EXECUTED"
	ContentExecuteError    ContentType = "EXECUTE_ERROR"
	ContentFeedback        ContentType = "FEEDBACK"
	ContentFeedbackRequest ContentType = "FEEDBACK_REQUEST"
	ContentThink           ContentType = "THINK"
	ContentThought         ContentType = "THOUGHT"
	ContentSystem          ContentType = "SYSTEM"
)

var knownContentTypes = []ContentType{
	ContentCommand,
	ContentAutonomous,
	ContentAuthorize,
	ContentAuthRequest,
	ContentExecuted,
	ContentExecuteError,
	ContentFeedback,
	ContentFeedbackRequest,
	ContentThink,
	ContentThought,
	ContentSystem,
}

// KnownContentTypes returns the recognized discriminators in dispatch order.
func KnownContentTypes() []ContentType {
	return slices.Clone(knownContentTypes)
}

// Known reports whether t is one of the recognized discriminators.
func (t ContentType) Known() bool {
	return slices.Contains(knownContentTypes, t)
}

func (t ContentType) String() string {
	return string(t)
}

// requiredFields lists the payload fields each view reads.
var requiredFields = map[ContentType][]string{
	ContentCommand:         {"thoughts", "command"},
	ContentAutonomous:      {"enabled"},
	ContentAuthorize:       {"message_id", "n"},
	ContentAuthRequest:     {"message_id"},
	ContentExecuted:        {"message_id", "output"},
	ContentExecuteError:    {"message_id", "error_type", "text"},
	ContentFeedback:        {"feedback"},
	ContentFeedbackRequest: {"question"},
	ContentThink:           {"input"},
	ContentThought:         {"runtime"},
	ContentSystem:          {"message"},
}

// RequiredFields returns the payload fields the view for t needs. Unknown
// types return nil.
func RequiredFields(t ContentType) []string {
	return slices.Clone(requiredFields[t])
}

// Content is the tagged union carried by a message. The raw JSON object is
// kept as received; fields are read on demand by the view that renders it.
type Content struct {
	Type ContentType
	Raw  json.RawMessage
}

// ParseContent parses a JSON object into a Content.
func ParseContent(data []byte) (*Content, error) {
	c := &Content{}
	if err := c.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return c, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Content) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("content is not valid JSON")
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return fmt.Errorf("content must be a JSON object, got %s", result.Type)
	}
	c.Type = ContentType(result.Get("type").String())
	c.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Content) MarshalJSON() ([]byte, error) {
	if len(c.Raw) == 0 {
		return []byte("{}"), nil
	}
	return c.Raw, nil
}

// HasType reports whether the content carries a non-empty discriminator.
func (c *Content) HasType() bool {
	return c.Type != ""
}

// Get returns the value at path using gjson path syntax.
func (c *Content) Get(path string) gjson.Result {
	return gjson.GetBytes(c.Raw, path)
}

// Has reports whether field is present and not null.
func (c *Content) Has(field string) bool {
	r := c.Get(field)
	return r.Exists() && r.Type != gjson.Null
}

// Text returns field coerced to a string, or "" when absent.
func (c *Content) Text(field string) string {
	return c.Get(field).String()
}

// Message returns the free-text "message" field.
func (c *Content) Message() string {
	return c.Text("message")
}

// MissingFields returns the required fields absent from the payload.
func (c *Content) MissingFields() []string {
	var missing []string
	for _, f := range requiredFields[c.Type] {
		if !c.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}
