// Package chat owns the conversation entities and the top-level chat
// orchestration service.
package chat

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleDeveloper Role = "developer"
	RoleSystem    Role = "system"
)

// ErrEmptyContent rejects messages whose content trims to nothing.
var ErrEmptyContent = errors.New("message content must be non-empty")

var validRoles = map[Role]struct{}{
	RoleUser:      {},
	RoleAssistant: {},
	RoleDeveloper: {},
	RoleSystem:    {},
}

// Message is a single immutable entry in a conversation.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage validates role and content and assigns a fresh id. Content is
// stored verbatim; only the trimmed form must be non-empty.
func NewMessage(role Role, content string) (Message, error) {
	if _, ok := validRoles[role]; !ok {
		return Message{}, errors.New("unknown message role: " + string(role))
	}
	if strings.TrimSpace(content) == "" {
		return Message{}, ErrEmptyContent
	}
	return Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
	}, nil
}

// NewUserMessage builds a validated user-role message.
func NewUserMessage(content string) (Message, error) {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage builds a validated assistant-role message.
func NewAssistantMessage(content string) (Message, error) {
	return NewMessage(RoleAssistant, content)
}
