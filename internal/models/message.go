package models

import "time"

// Well-known message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one entry of a task's chat log as handed to the view layer.
// A nil Content means the message carried no content at all.
type Message struct {
	ID        string    `json:"id,omitempty"`
	Role      string    `json:"role"`
	Agent     string    `json:"agent,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	Content   *Content  `json:"content"`
}

// ContentType returns the discriminator of the message content, or "" when
// the message has no content.
func (m Message) ContentType() ContentType {
	if m.Content == nil {
		return ""
	}
	return m.Content.Type
}
