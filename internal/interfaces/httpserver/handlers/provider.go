package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"llm-chat-server/internal/domain/chat"
	"llm-chat-server/internal/domain/llm"
)

// ChatService is the slice of the chat domain surface the handlers use.
// Satisfied by *chat.Service.
type ChatService interface {
	CompleteChat(ctx context.Context, req chat.CompletionRequest) (chat.CompletionResult, error)
	GetConversation(ctx context.Context, id string) (chat.Conversation, error)
	ListConversations(ctx context.Context) []chat.Conversation
	DeleteConversation(ctx context.Context, id string) error
}

// ModelCatalog is the slice of the model registry surface the handlers
// use. Satisfied by *llm.Registry.
type ModelCatalog interface {
	ListModels() []llm.ModelDescriptor
	GetDescriptor(modelID string) (llm.ModelDescriptor, error)
}

// Provider aggregates the HTTP handlers.
type Provider struct {
	Chat         *ChatHandler
	Conversation *ConversationHandler
	Model        *ModelHandler
}

// NewProvider constructs all handlers.
func NewProvider(chatService ChatService, models ModelCatalog, log zerolog.Logger) *Provider {
	return &Provider{
		Chat:         NewChatHandler(chatService, log),
		Conversation: NewConversationHandler(chatService, log),
		Model:        NewModelHandler(models, log),
	}
}
