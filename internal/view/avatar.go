package view

import (
	"strings"

	"github.com/diogo/ixview/internal/models"
	"github.com/diogo/ixview/internal/render"
)

// Avatar is the speaker marker shown left of the bubble.
type Avatar struct {
	Role  string
	Label string
	Glyph string
	Color render.ColorToken
}

// AvatarFor derives the avatar from the message role and agent name.
func AvatarFor(msg models.Message) Avatar {
	role := strings.ToLower(msg.Role)
	switch role {
	case models.RoleUser:
		return Avatar{Role: role, Label: "You", Glyph: "●", Color: render.Blue600}
	case models.RoleAssistant:
		label := "Agent"
		if msg.Agent != "" {
			label = msg.Agent
		}
		return Avatar{Role: role, Label: label, Glyph: "◆", Color: render.Purple600}
	case models.RoleSystem:
		return Avatar{Role: role, Label: "System", Glyph: "■", Color: render.Gray500}
	case "":
		return Avatar{Label: "Unknown", Glyph: "?", Color: render.Gray500}
	}
	return Avatar{Role: role, Label: msg.Role, Glyph: "○", Color: render.Gray500}
}
