package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-chat-server/internal/domain/chat"
	"llm-chat-server/internal/domain/llm"
	"llm-chat-server/internal/domain/rag"
	"llm-chat-server/internal/domain/search"
	conversationrepo "llm-chat-server/internal/infrastructure/repository/conversation"
)

// MockModel records completion calls and replays a canned reply.
type MockModel struct {
	ModelID           string
	Reply             string
	Err               error
	SystemPrompts     []string
	PromptHistories   [][]llm.Message
	GetCompletionFunc func(ctx context.Context, systemInstruction string, messages []llm.Message) (llm.Message, error)
}

func (m *MockModel) Descriptor() llm.ModelDescriptor {
	return llm.ModelDescriptor{ModelID: m.ModelID, Provider: "mock"}
}

func (m *MockModel) GetCompletion(ctx context.Context, systemInstruction string, messages []llm.Message) (llm.Message, error) {
	m.SystemPrompts = append(m.SystemPrompts, systemInstruction)
	m.PromptHistories = append(m.PromptHistories, messages)
	if m.GetCompletionFunc != nil {
		return m.GetCompletionFunc(ctx, systemInstruction, messages)
	}
	if m.Err != nil {
		return llm.Message{}, m.Err
	}
	return llm.Message{Role: llm.RoleAssistant, Content: m.Reply}, nil
}

// MockAugmenter replays a canned RAG outcome.
type MockAugmenter struct {
	Outcome     rag.Outcome
	Err         error
	ExecuteFunc func(ctx context.Context, userMessage string, model llm.Model, engineID search.EngineID) (rag.Outcome, error)
}

func (m *MockAugmenter) Execute(ctx context.Context, userMessage string, model llm.Model, engineID search.EngineID) (rag.Outcome, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, userMessage, model, engineID)
	}
	return m.Outcome, m.Err
}

func userMessage(t *testing.T, content string) chat.Message {
	t.Helper()
	msg, err := chat.NewUserMessage(content)
	require.NoError(t, err)
	return msg
}

func newTestService(model *MockModel, augmenter *MockAugmenter) (*chat.Service, *conversationrepo.InMemoryRepository) {
	repo := conversationrepo.NewInMemoryRepository()
	registry := llm.NewRegistry(model)
	return chat.NewService(registry, repo, augmenter, zerolog.Nop()), repo
}

func TestCompleteChatNewConversation(t *testing.T) {
	model := &MockModel{ModelID: "openai_gpt-4o-mini", Reply: "Paris."}
	svc, repo := newTestService(model, &MockAugmenter{})

	result, err := svc.CompleteChat(context.Background(), chat.CompletionRequest{
		Message: userMessage(t, "What is the capital of France?"),
		ModelID: "openai_gpt-4o-mini",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(result.ConversationID)
	assert.NoError(t, err, "generated conversation id must be a uuid")
	assert.Equal(t, chat.RoleAssistant, result.Message.Role)
	assert.Equal(t, "Paris.", result.Message.Content)
	assert.False(t, result.SearchPerformed)

	stored, ok := repo.Get(context.Background(), result.ConversationID)
	require.True(t, ok)
	assert.Equal(t, "What is the capital of France?", stored.Title)
	require.Len(t, stored.Messages, 2)
	assert.Equal(t, chat.RoleUser, stored.Messages[0].Role)
	assert.Equal(t, chat.RoleAssistant, stored.Messages[1].Role)

	// A fresh conversation prompts with the single user message only.
	require.Len(t, model.PromptHistories, 1)
	require.Len(t, model.PromptHistories[0], 1)
	assert.Equal(t, "What is the capital of France?", model.PromptHistories[0][0].Content)
}

func TestCompleteChatExistingConversationAppendsPair(t *testing.T) {
	model := &MockModel{ModelID: "openai_gpt-4o-mini", Reply: "About 67 million."}
	svc, repo := newTestService(model, &MockAugmenter{})

	first := userMessage(t, "What is the capital of France?")
	reply, err := chat.NewAssistantMessage("Paris.")
	require.NoError(t, err)
	seeded, err := repo.Create(context.Background(), chat.NewConversation("conv-1", first, reply))
	require.NoError(t, err)

	result, err := svc.CompleteChat(context.Background(), chat.CompletionRequest{
		ConversationID: "conv-1",
		Message:        userMessage(t, "And its population?"),
		ModelID:        "openai_gpt-4o-mini",
	})
	require.NoError(t, err)
	assert.Equal(t, "conv-1", result.ConversationID)

	stored, ok := repo.Get(context.Background(), "conv-1")
	require.True(t, ok)
	require.Len(t, stored.Messages, 4)
	assert.Equal(t, "And its population?", stored.Messages[2].Content)
	assert.Equal(t, "About 67 million.", stored.Messages[3].Content)
	assert.Equal(t, "What is the capital of France?", stored.Title, "title never changes after creation")
	assert.True(t, stored.UpdatedAt.After(seeded.UpdatedAt), "updated_at must strictly increase")

	// The model sees the full prior history plus the new turn.
	require.Len(t, model.PromptHistories, 1)
	require.Len(t, model.PromptHistories[0], 3)
	assert.Equal(t, "And its population?", model.PromptHistories[0][2].Content)
}

func TestCompleteChatWithSearchResults(t *testing.T) {
	model := &MockModel{ModelID: "openai_gpt-4o-mini", Reply: "Sunny today."}
	augmenter := &MockAugmenter{Outcome: rag.Outcome{
		SearchPerformed: true,
		Results: []search.Result{
			{Title: "Forecast", Link: "https://a.example", Snippet: "sunny"},
		},
		FormattedResults: "[Source 1] Forecast\nURL: https://a.example\nSummary: Sunny.\n\n",
		TotalResults:     1,
	}}
	svc, repo := newTestService(model, augmenter)

	result, err := svc.CompleteChat(context.Background(), chat.CompletionRequest{
		Message: userMessage(t, "weather in paris?"),
		ModelID: "openai_gpt-4o-mini",
	})
	require.NoError(t, err)

	assert.True(t, result.SearchPerformed)
	require.Len(t, result.SearchResults, 1)
	assert.Equal(t, "Forecast", result.SearchResults[0].Title)

	// The model sees the augmented turn.
	require.Len(t, model.PromptHistories, 1)
	augmented := model.PromptHistories[0][0].Content
	assert.Contains(t, augmented, "weather in paris?")
	assert.Contains(t, augmented, "Web search results:")
	assert.Contains(t, augmented, "[Source 1] Forecast")

	// Storage keeps the original user message, not the augmented one.
	stored, ok := repo.Get(context.Background(), result.ConversationID)
	require.True(t, ok)
	assert.Equal(t, "weather in paris?", stored.Messages[0].Content)
}

func TestCompleteChatSearchEmptyResultsDoesNotAugment(t *testing.T) {
	model := &MockModel{ModelID: "openai_gpt-4o-mini", Reply: "Hello."}
	augmenter := &MockAugmenter{Outcome: rag.Outcome{SearchPerformed: true}}
	svc, _ := newTestService(model, augmenter)

	_, err := svc.CompleteChat(context.Background(), chat.CompletionRequest{
		Message: userMessage(t, "hi"),
		ModelID: "openai_gpt-4o-mini",
	})
	require.NoError(t, err)

	require.Len(t, model.PromptHistories, 1)
	assert.Equal(t, "hi", model.PromptHistories[0][0].Content)
}

func TestCompleteChatRAGFailureDegradesToPlainCompletion(t *testing.T) {
	model := &MockModel{ModelID: "openai_gpt-4o-mini", Reply: "Plain answer."}
	augmenter := &MockAugmenter{Err: errors.New("engine exploded")}
	svc, _ := newTestService(model, augmenter)

	result, err := svc.CompleteChat(context.Background(), chat.CompletionRequest{
		Message: userMessage(t, "anything"),
		ModelID: "openai_gpt-4o-mini",
	})
	require.NoError(t, err)

	assert.False(t, result.SearchPerformed)
	assert.Empty(t, result.SearchResults)
	assert.Equal(t, "Plain answer.", result.Message.Content)
}

func TestCompleteChatUnknownModel(t *testing.T) {
	model := &MockModel{ModelID: "openai_gpt-4o-mini"}
	svc, repo := newTestService(model, &MockAugmenter{})

	_, err := svc.CompleteChat(context.Background(), chat.CompletionRequest{
		Message: userMessage(t, "hello"),
		ModelID: "gpt-5",
	})

	var notFound *llm.ModelNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, repo.List(context.Background()), "nothing persists for a rejected request")
}

func TestCompleteChatProviderErrorLeavesConversationUntouched(t *testing.T) {
	model := &MockModel{
		ModelID: "openai_gpt-4o-mini",
		Err:     &llm.GenerationError{ModelID: "openai_gpt-4o-mini", Err: errors.New("502")},
	}
	svc, repo := newTestService(model, &MockAugmenter{})

	_, err := svc.CompleteChat(context.Background(), chat.CompletionRequest{
		Message: userMessage(t, "hello"),
		ModelID: "openai_gpt-4o-mini",
	})

	var genErr *llm.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Empty(t, repo.List(context.Background()))
}

func TestGetConversationNotFound(t *testing.T) {
	svc, _ := newTestService(&MockModel{ModelID: "openai_gpt-4o-mini"}, &MockAugmenter{})

	_, err := svc.GetConversation(context.Background(), "missing")

	var notFound *chat.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.ConversationID)
}

func TestDeleteConversation(t *testing.T) {
	svc, repo := newTestService(&MockModel{ModelID: "openai_gpt-4o-mini"}, &MockAugmenter{})

	msg := userMessage(t, "hello")
	_, err := repo.Create(context.Background(), chat.NewConversation("conv-1", msg))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteConversation(context.Background(), "conv-1"))
	assert.False(t, repo.Exists(context.Background(), "conv-1"))

	var notFound *chat.NotFoundError
	assert.ErrorAs(t, svc.DeleteConversation(context.Background(), "conv-1"), &notFound)
}
