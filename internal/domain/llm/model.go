// Package llm defines the capability contract shared by every language
// model backend and the registry that resolves model ids to backends.
package llm

import "context"

// Role identifies the author of a prompt message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleDeveloper Role = "developer"
	RoleSystem    Role = "system"
)

// Message is the wire-level prompt unit passed to a backend. The chat
// domain owns the richer conversation entity; callers map into this shape.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a user-role prompt message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// ModelDescriptor is static read-only metadata about a backend.
type ModelDescriptor struct {
	ModelID         string `json:"model_id"`
	Name            string `json:"name"`
	Provider        string `json:"provider"`
	Description     string `json:"description"`
	ContextLength   int    `json:"context_length"`
	MaxOutputTokens int    `json:"max_output_tokens"`
}

// Model is the uniform contract every LLM backend implements. A backend is
// constructed once, lives for the process lifetime, and must be safe for
// concurrent invocation. GetCompletion returns an assistant-role message or
// a *GenerationError; raw transport errors never escape.
type Model interface {
	Descriptor() ModelDescriptor
	GetCompletion(ctx context.Context, systemInstruction string, messages []Message) (Message, error)
}
