package quill

import "strings"

// Message is a rendered prompt message: a role and its resolved text.
type Message struct {
	Role Role
	Text string
}

// SystemMessage returns a system Message with the given text.
func SystemMessage(text string) Message { return Message{Role: RoleSystem, Text: text} }

// UserMessage returns a user Message with the given text.
func UserMessage(text string) Message { return Message{Role: RoleUser, Text: text} }

// AssistantMessage returns an assistant Message with the given text.
func AssistantMessage(text string) Message { return Message{Role: RoleAssistant, Text: text} }

// SplitSystem separates system messages from the conversation turns. System
// texts are joined with a blank line. Providers whose APIs carry the system
// prompt out of band use it.
func SplitSystem(msgs []Message) (system string, turns []Message) {
	var parts []string
	for _, m := range msgs {
		if m.Role == RoleSystem {
			parts = append(parts, m.Text)
			continue
		}
		turns = append(turns, m)
	}
	return strings.Join(parts, "\n\n"), turns
}
