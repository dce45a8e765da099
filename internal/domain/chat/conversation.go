package chat

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is an ordered, append-only message history. The message list
// is owned by the Repository; the orchestrator never mutates it in place
// and always goes through ReplaceMessages.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewConversation creates a conversation whose title is the verbatim
// content of its first message.
func NewConversation(id string, messages ...Message) Conversation {
	if id == "" {
		id = uuid.NewString()
	}
	title := ""
	if len(messages) > 0 {
		title = messages[0].Content
	}
	now := time.Now().UTC()
	return Conversation{
		ID:        id,
		Title:     title,
		Messages:  messages,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
