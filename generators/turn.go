package generators

import (
	"strings"
)

// Turn is one role-tagged message of a conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// FormatPrompt flattens turns into one prompt, one "[ROLE] content" block per turn.
func FormatPrompt(turns []Turn) string {
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteByte('[')
		b.WriteString(strings.ToUpper(string(turn.Role)))
		b.WriteString("] ")
		b.WriteString(turn.Content)
	}
	return b.String()
}
