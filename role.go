package quill

import "fmt"

// Role is the conversational position of a prompt message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Validate reports whether r is one of the known roles.
func (r Role) Validate() error {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("unknown role %q: %w", string(r), ErrValidation)
	}
}
