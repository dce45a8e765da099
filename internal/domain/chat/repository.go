package chat

import (
	"context"
	"fmt"
)

// NotFoundError is returned when a conversation id is absent.
type NotFoundError struct {
	ConversationID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("conversation %s not found", e.ConversationID)
}

// Repository exposes data access for conversations. Every mutating
// operation refreshes the conversation's UpdatedAt so it strictly
// increases across mutations.
type Repository interface {
	Create(ctx context.Context, conversation Conversation) (Conversation, error)
	Exists(ctx context.Context, id string) bool
	Get(ctx context.Context, id string) (Conversation, bool)
	ReplaceMessages(ctx context.Context, id string, messages []Message) (Conversation, error)
	List(ctx context.Context) []Conversation
	Delete(ctx context.Context, id string)
}
