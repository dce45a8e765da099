package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"llm-chat-server/internal/domain/llm"
	"llm-chat-server/internal/domain/rag"
	"llm-chat-server/internal/domain/search"
)

// Augmenter runs the RAG pipeline for one turn. Satisfied by *rag.Service.
type Augmenter interface {
	Execute(ctx context.Context, userMessage string, model llm.Model, engineID search.EngineID) (rag.Outcome, error)
}

// CompletionRequest is one chat turn submitted by the caller.
type CompletionRequest struct {
	ConversationID string
	Message        Message
	ModelID        string
}

// CompletionResult is the outcome of one chat turn.
type CompletionResult struct {
	ConversationID  string
	Message         Message
	ModelID         string
	SearchPerformed bool
	SearchResults   []search.Result
}

// Service coordinates one chat turn: resolve the backend, run RAG, call
// the model with the conversation history, and persist the new pair.
type Service struct {
	models    *llm.Registry
	repo      Repository
	augmenter Augmenter
	log       zerolog.Logger

	// turnLocks serializes concurrent turns on the same conversation id so
	// the load-complete-replace sequence cannot interleave. Turns on
	// different conversations stay fully parallel.
	turnLocks sync.Map
}

// NewService wires the chat orchestrator.
func NewService(models *llm.Registry, repo Repository, augmenter Augmenter, log zerolog.Logger) *Service {
	return &Service{
		models:    models,
		repo:      repo,
		augmenter: augmenter,
		log:       log.With().Str("component", "chat-service").Logger(),
	}
}

// CompleteChat generates the assistant reply for one turn and persists the
// {user, assistant} pair. An unknown model id rejects the request; a RAG
// failure degrades the turn to a plain completion instead of failing it.
func (s *Service) CompleteChat(ctx context.Context, req CompletionRequest) (CompletionResult, error) {
	backend, err := s.models.GetBackend(req.ModelID)
	if err != nil {
		return CompletionResult{}, err
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	unlock := s.lockTurn(conversationID)
	defer unlock()

	systemPrompt := generalChatPrompt
	effective := llm.Message{Role: llm.RoleUser, Content: req.Message.Content}

	outcome, err := s.augmenter.Execute(ctx, req.Message.Content, backend, search.EngineGoogle)
	if err != nil {
		s.log.Warn().Err(err).Msg("web RAG failed, continuing without augmentation")
		outcome = rag.Outcome{}
	}
	if outcome.SearchPerformed && len(outcome.Results) > 0 {
		systemPrompt = useSearchResultsPrompt
		effective.Content = fmt.Sprintf("%s\n\nWeb search results:\n%s", req.Message.Content, outcome.FormattedResults)
	}

	var assistant Message
	if existing, ok := s.repo.Get(ctx, conversationID); ok {
		assistant, err = s.completeExisting(ctx, backend, existing, systemPrompt, effective, req.Message)
	} else {
		assistant, err = s.completeNew(ctx, backend, conversationID, systemPrompt, effective, req.Message)
	}
	if err != nil {
		return CompletionResult{}, err
	}

	return CompletionResult{
		ConversationID:  conversationID,
		Message:         assistant,
		ModelID:         req.ModelID,
		SearchPerformed: outcome.SearchPerformed,
		SearchResults:   outcome.Results,
	}, nil
}

func (s *Service) completeExisting(ctx context.Context, backend llm.Model, existing Conversation, systemPrompt string, effective llm.Message, original Message) (Message, error) {
	prompt := append(toPromptMessages(existing.Messages), effective)
	reply, err := backend.GetCompletion(ctx, systemPrompt, prompt)
	if err != nil {
		return Message{}, err
	}

	assistant, err := NewAssistantMessage(reply.Content)
	if err != nil {
		return Message{}, &llm.GenerationError{ModelID: backend.Descriptor().ModelID, Err: err}
	}

	history := append(existing.Messages, original, assistant)
	if _, err := s.repo.ReplaceMessages(ctx, existing.ID, history); err != nil {
		return Message{}, err
	}
	return assistant, nil
}

func (s *Service) completeNew(ctx context.Context, backend llm.Model, conversationID, systemPrompt string, effective llm.Message, original Message) (Message, error) {
	reply, err := backend.GetCompletion(ctx, systemPrompt, []llm.Message{effective})
	if err != nil {
		return Message{}, err
	}

	assistant, err := NewAssistantMessage(reply.Content)
	if err != nil {
		return Message{}, &llm.GenerationError{ModelID: backend.Descriptor().ModelID, Err: err}
	}

	conversation := NewConversation(conversationID, original, assistant)
	if _, err := s.repo.Create(ctx, conversation); err != nil {
		return Message{}, err
	}
	return assistant, nil
}

// GetConversation retrieves a conversation by id.
func (s *Service) GetConversation(ctx context.Context, id string) (Conversation, error) {
	conversation, ok := s.repo.Get(ctx, id)
	if !ok {
		return Conversation{}, &NotFoundError{ConversationID: id}
	}
	return conversation, nil
}

// ListConversations returns all conversations.
func (s *Service) ListConversations(ctx context.Context) []Conversation {
	return s.repo.List(ctx)
}

// DeleteConversation removes a conversation by id, dropping its turn lock
// entry so deleted ids do not accumulate mutexes. A turn already waiting
// on the old mutex proceeds afterwards as a fresh first turn.
func (s *Service) DeleteConversation(ctx context.Context, id string) error {
	unlock := s.lockTurn(id)
	defer unlock()
	defer s.turnLocks.Delete(id)

	if !s.repo.Exists(ctx, id) {
		return &NotFoundError{ConversationID: id}
	}
	s.repo.Delete(ctx, id)
	return nil
}

func (s *Service) lockTurn(conversationID string) func() {
	value, _ := s.turnLocks.LoadOrStore(conversationID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func toPromptMessages(messages []Message) []llm.Message {
	prompt := make([]llm.Message, 0, len(messages)+1)
	for _, m := range messages {
		prompt = append(prompt, llm.Message{Role: llm.Role(m.Role), Content: m.Content})
	}
	return prompt
}
