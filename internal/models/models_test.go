package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func mustContent(data string) *Content {
	c, err := ParseContent([]byte(data))
	if err != nil {
		panic(err)
	}
	return c
}

func TestKnownContentTypes(t *testing.T) {
	types := KnownContentTypes()

	if len(types) != 11 {
		t.Fatalf("KnownContentTypes() returned %d types, expected 11", len(types))
	}
	if types[0] != ContentCommand || types[10] != ContentSystem {
		t.Errorf("unexpected dispatch order: %v", types)
	}

	// The returned slice is a copy
	types[0] = "MUTATED"
	if KnownContentTypes()[0] != ContentCommand {
		t.Error("KnownContentTypes() should return a copy")
	}
}

func TestContentTypeKnown(t *testing.T) {
	tests := []struct {
		tag  ContentType
		want bool
	}{
		{ContentExecuted, true},
		{ContentSystem, true},
		{"UNKNOWN_TAG", false},
		{"executed", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			if got := tt.tag.Known(); got != tt.want {
				t.Errorf("%q.Known() = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestEveryKnownTypeHasRequiredFields(t *testing.T) {
	for _, ct := range KnownContentTypes() {
		if len(RequiredFields(ct)) == 0 {
			t.Errorf("no required fields declared for %s", ct)
		}
	}
	if RequiredFields("UNKNOWN_TAG") != nil {
		t.Error("unknown types should have no required fields")
	}
}

func TestParseContent(t *testing.T) {
	c, err := ParseContent([]byte(`{"type":"EXECUTED","message_id":"m1","output":"hello"}`))
	if err != nil {
		t.Fatalf("ParseContent() error = %v", err)
	}

	if c.Type != ContentExecuted {
		t.Errorf("Type = %s, want EXECUTED", c.Type)
	}
	if got := c.Text("message_id"); got != "m1" {
		t.Errorf("message_id = %q, want m1", got)
	}
	if got := c.Text("output"); got != "hello" {
		t.Errorf("output = %q, want hello", got)
	}
	if !c.HasType() {
		t.Error("HasType() = false")
	}
}

func TestParseContentRejectsNonObjects(t *testing.T) {
	inputs := []string{`"text"`, `[1,2]`, `42`, `{not json`}

	for _, in := range inputs {
		if _, err := ParseContent([]byte(in)); err == nil {
			t.Errorf("ParseContent(%s) expected error", in)
		}
	}
}

func TestContentWithoutType(t *testing.T) {
	c := mustContent(`{"message":"plain"}`)

	if c.HasType() {
		t.Error("HasType() should be false")
	}
	if c.Message() != "plain" {
		t.Errorf("Message() = %q, want plain", c.Message())
	}
}

func TestContentHas(t *testing.T) {
	c := mustContent(`{"type":"AUTHORIZE","message_id":null,"n":0}`)

	if c.Has("message_id") {
		t.Error("null fields should not count as present")
	}
	if !c.Has("n") {
		t.Error("zero values should count as present")
	}
	if c.Has("missing") {
		t.Error("absent fields should not be present")
	}
}

func TestMissingFields(t *testing.T) {
	c := mustContent(`{"type":"EXECUTED","message_id":"m1"}`)

	missing := c.MissingFields()
	if len(missing) != 1 || missing[0] != "output" {
		t.Errorf("MissingFields() = %v, want [output]", missing)
	}

	unknown := mustContent(`{"type":"UNKNOWN_TAG"}`)
	if len(unknown.MissingFields()) != 0 {
		t.Error("unknown types should never report missing fields")
	}
}

func TestMessageRoundTripKeepsRawContent(t *testing.T) {
	in := `{"id":"1","role":"assistant","content":{"type":"SYSTEM","message":"notice","extra":[1,2]}}`

	var msg Message
	if err := json.Unmarshal([]byte(in), &msg); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if msg.ContentType() != ContentSystem {
		t.Errorf("ContentType() = %s, want SYSTEM", msg.ContentType())
	}

	out, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if !strings.Contains(string(out), `"extra":[1,2]`) {
		t.Errorf("raw content not preserved: %s", out)
	}
	if strings.Contains(string(out), "created_at") {
		t.Errorf("zero created_at should be omitted: %s", out)
	}
}

func TestMessageNullContent(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"role":"system","content":null}`), &msg); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if msg.Content != nil {
		t.Error("null content should decode to nil")
	}
	if msg.ContentType() != "" {
		t.Errorf("ContentType() = %q, want empty", msg.ContentType())
	}
}
