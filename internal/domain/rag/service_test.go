package rag_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-chat-server/internal/domain/llm"
	"llm-chat-server/internal/domain/rag"
	"llm-chat-server/internal/domain/search"
)

// scriptedModel replays canned completions in call order. Tests assert on
// the recorded calls to pin the stage sequence.
type scriptedModel struct {
	replies []llm.Message
	errs    []error
	calls   []scriptedCall
}

type scriptedCall struct {
	system   string
	messages []llm.Message
}

func (m *scriptedModel) Descriptor() llm.ModelDescriptor {
	return llm.ModelDescriptor{ModelID: "openai_gpt-4o-mini", Provider: "mock"}
}

func (m *scriptedModel) GetCompletion(_ context.Context, systemInstruction string, messages []llm.Message) (llm.Message, error) {
	index := len(m.calls)
	m.calls = append(m.calls, scriptedCall{system: systemInstruction, messages: messages})
	if index < len(m.errs) && m.errs[index] != nil {
		return llm.Message{}, m.errs[index]
	}
	if index < len(m.replies) {
		return m.replies[index], nil
	}
	return llm.Message{Role: llm.RoleAssistant, Content: "unscripted"}, nil
}

type mockEngine struct {
	searchFunc func(ctx context.Context, query string, maxResults int) ([]search.Result, error)
}

func (m *mockEngine) Descriptor() search.EngineDescriptor {
	return search.EngineDescriptor{EngineID: search.EngineGoogle, Name: "google", MaxResultsPerQuery: 10}
}

func (m *mockEngine) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	return m.searchFunc(ctx, query, maxResults)
}

type mockRetriever struct {
	pages map[string]string
}

func (m *mockRetriever) Retrieve(_ context.Context, url string) string {
	return m.pages[url]
}

func assistant(content string) llm.Message {
	return llm.Message{Role: llm.RoleAssistant, Content: content}
}

func TestExecuteDeclinesOnAnythingButLiteralTrue(t *testing.T) {
	for _, decision := range []string{"false", "True", "true.", " true", "TRUE", "yes"} {
		model := &scriptedModel{replies: []llm.Message{assistant(decision)}}
		engineCalled := false
		engines := search.NewRegistry(&mockEngine{
			searchFunc: func(context.Context, string, int) ([]search.Result, error) {
				engineCalled = true
				return nil, nil
			},
		})
		svc := rag.NewService(engines, &mockRetriever{}, zerolog.Nop())

		outcome, err := svc.Execute(context.Background(), "what is the weather", model, search.EngineGoogle)
		require.NoError(t, err, "decision %q", decision)

		assert.False(t, outcome.SearchPerformed, "decision %q", decision)
		assert.Empty(t, outcome.FormattedResults)
		assert.False(t, engineCalled, "decision %q must not reach the engine", decision)
		assert.Len(t, model.calls, 1, "decision %q must stop after stage one", decision)
	}
}

func TestExecuteFullPipeline(t *testing.T) {
	model := &scriptedModel{replies: []llm.Message{
		assistant("true"),
		assistant("paris weather today"),
		assistant("Sunny, 21 degrees."),
		assistant("Rain expected tomorrow."),
	}}

	var gotQuery string
	var gotMax int
	engines := search.NewRegistry(&mockEngine{
		searchFunc: func(_ context.Context, query string, maxResults int) ([]search.Result, error) {
			gotQuery = query
			gotMax = maxResults
			return []search.Result{
				{Title: "Forecast A", Link: "https://a.example", Snippet: "a"},
				{Title: "Forecast B", Link: "https://b.example", Snippet: "b"},
			}, nil
		},
	})
	retriever := &mockRetriever{pages: map[string]string{
		"https://a.example": "page a text",
		"https://b.example": "page b text",
	}}
	svc := rag.NewService(engines, retriever, zerolog.Nop())

	outcome, err := svc.Execute(context.Background(), "what is the weather in paris", model, search.EngineGoogle)
	require.NoError(t, err)

	assert.True(t, outcome.SearchPerformed)
	assert.Equal(t, "paris weather today", gotQuery)
	assert.Equal(t, 5, gotMax)
	assert.Equal(t, 2, outcome.TotalResults)
	require.Len(t, outcome.Results, 2)
	assert.Equal(t, "Forecast A", outcome.Results[0].Title)

	expected := "[Source 1] Forecast A\nURL: https://a.example\nSummary: Sunny, 21 degrees.\n\n" +
		"[Source 2] Forecast B\nURL: https://b.example\nSummary: Rain expected tomorrow.\n\n"
	assert.Equal(t, expected, outcome.FormattedResults)

	// Summaries are generated against the original user message.
	require.Len(t, model.calls, 4)
	assert.Contains(t, model.calls[2].messages[0].Content, "search_query: what is the weather in paris")
}

func TestExecuteUnfetchablePageGetsSentinelSummary(t *testing.T) {
	model := &scriptedModel{replies: []llm.Message{
		assistant("true"),
		assistant("some query"),
	}}
	engines := search.NewRegistry(&mockEngine{
		searchFunc: func(context.Context, string, int) ([]search.Result, error) {
			return []search.Result{{Title: "Dead Page", Link: "https://dead.example"}}, nil
		},
	})
	svc := rag.NewService(engines, &mockRetriever{}, zerolog.Nop())

	outcome, err := svc.Execute(context.Background(), "anything", model, search.EngineGoogle)
	require.NoError(t, err)

	assert.True(t, outcome.SearchPerformed)
	assert.Contains(t, outcome.FormattedResults, "Summary: No content available for summarization.")
	// No summarization call for an empty page.
	assert.Len(t, model.calls, 2)
}

func TestExecuteSummarizationFailureKeepsResultSlot(t *testing.T) {
	model := &scriptedModel{
		replies: []llm.Message{
			assistant("true"),
			assistant("some query"),
			{},
			assistant("Second summary."),
		},
		errs: []error{nil, nil, errors.New("model overloaded"), nil},
	}
	engines := search.NewRegistry(&mockEngine{
		searchFunc: func(context.Context, string, int) ([]search.Result, error) {
			return []search.Result{
				{Title: "First", Link: "https://one.example"},
				{Title: "Second", Link: "https://two.example"},
			}, nil
		},
	})
	retriever := &mockRetriever{pages: map[string]string{
		"https://one.example": "text one",
		"https://two.example": "text two",
	}}
	svc := rag.NewService(engines, retriever, zerolog.Nop())

	outcome, err := svc.Execute(context.Background(), "anything", model, search.EngineGoogle)
	require.NoError(t, err)

	assert.Equal(t, 2, outcome.TotalResults)
	assert.Contains(t, outcome.FormattedResults, "[Source 1] First\nURL: https://one.example\nSummary: \n")
	assert.Contains(t, outcome.FormattedResults, "[Source 2] Second\nURL: https://two.example\nSummary: Second summary.\n")
}

func TestExecuteDecisionErrorAborts(t *testing.T) {
	model := &scriptedModel{errs: []error{fmt.Errorf("upstream unavailable")}}
	svc := rag.NewService(search.NewRegistry(), &mockRetriever{}, zerolog.Nop())

	outcome, err := svc.Execute(context.Background(), "anything", model, search.EngineGoogle)
	require.Error(t, err)
	assert.False(t, outcome.SearchPerformed)
}

func TestExecuteSearchErrorAborts(t *testing.T) {
	model := &scriptedModel{replies: []llm.Message{
		assistant("true"),
		assistant("some query"),
	}}
	engines := search.NewRegistry(&mockEngine{
		searchFunc: func(context.Context, string, int) ([]search.Result, error) {
			return nil, &search.QueryError{Engine: search.EngineGoogle, Kind: search.QueryErrorRateLimit}
		},
	})
	svc := rag.NewService(engines, &mockRetriever{}, zerolog.Nop())

	_, err := svc.Execute(context.Background(), "anything", model, search.EngineGoogle)

	var queryErr *search.QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, search.QueryErrorRateLimit, queryErr.Kind)
}

func TestExecuteUnknownEngineAborts(t *testing.T) {
	model := &scriptedModel{replies: []llm.Message{
		assistant("true"),
		assistant("some query"),
	}}
	svc := rag.NewService(search.NewRegistry(), &mockRetriever{}, zerolog.Nop())

	_, err := svc.Execute(context.Background(), "anything", model, search.EngineGoogle)

	var notFound *search.EngineNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
