// Package conversation provides the in-memory Repository implementation
// backing the chat service. Single-process and volatile by design; the
// chat.Repository contract keeps a durable backend swappable.
package conversation

import (
	"context"
	"sync"
	"time"

	"llm-chat-server/internal/domain/chat"
)

// entry pairs a conversation with its own mutex so mutations on one
// conversation never contend with mutations on another. The repository
// RWMutex guards only map membership.
type entry struct {
	mu           sync.Mutex
	conversation chat.Conversation
}

// InMemoryRepository is a thread-safe conversation store.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

var _ chat.Repository = (*InMemoryRepository)(nil)

// NewInMemoryRepository builds an empty store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		entries: make(map[string]*entry),
	}
}

// Create stores a new conversation, stamping UpdatedAt.
func (r *InMemoryRepository) Create(ctx context.Context, conversation chat.Conversation) (chat.Conversation, error) {
	conversation.UpdatedAt = nextUpdateTime(conversation.UpdatedAt)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[conversation.ID] = &entry{conversation: cloneConversation(conversation)}
	return conversation, nil
}

// Exists reports whether a conversation id is present.
func (r *InMemoryRepository) Exists(ctx context.Context, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

// Get returns a copy of the conversation for id.
func (r *InMemoryRepository) Get(ctx context.Context, id string) (chat.Conversation, bool) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return chat.Conversation{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneConversation(e.conversation), true
}

// ReplaceMessages swaps the message list for id, refreshing UpdatedAt so
// it strictly increases across mutations.
func (r *InMemoryRepository) ReplaceMessages(ctx context.Context, id string, messages []chat.Message) (chat.Conversation, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return chat.Conversation{}, &chat.NotFoundError{ConversationID: id}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.conversation.Messages = append([]chat.Message(nil), messages...)
	e.conversation.UpdatedAt = nextUpdateTime(e.conversation.UpdatedAt)
	return cloneConversation(e.conversation), nil
}

// List returns copies of all conversations.
func (r *InMemoryRepository) List(ctx context.Context) []chat.Conversation {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	conversations := make([]chat.Conversation, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		conversations = append(conversations, cloneConversation(e.conversation))
		e.mu.Unlock()
	}
	return conversations
}

// Delete removes a conversation; absent ids are a no-op.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// nextUpdateTime returns now, nudged forward if the clock has not advanced
// past the previous update so UpdatedAt strictly increases.
func nextUpdateTime(previous time.Time) time.Time {
	now := time.Now().UTC()
	if !now.After(previous) {
		return previous.Add(time.Nanosecond)
	}
	return now
}

func cloneConversation(c chat.Conversation) chat.Conversation {
	clone := c
	clone.Messages = append([]chat.Message(nil), c.Messages...)
	return clone
}
