// Package rag implements retrieval-augmented generation for a single chat
// turn: decide whether to search, generate a query, search, retrieve and
// summarize pages, and format the results for prompt injection.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"llm-chat-server/internal/domain/llm"
	"llm-chat-server/internal/domain/search"
)

const (
	// maxSearchResults caps every RAG search regardless of engine limits.
	maxSearchResults = 5
	// summaryCharacterLimit is the per-page summary budget handed to the model.
	summaryCharacterLimit = 1000
	// noContentSentinel marks results whose page yielded nothing to summarize.
	noContentSentinel = "No content available for summarization."
)

// Service runs the five RAG stages in strict order. Stages are never
// retried; a failure above the per-page level aborts the run and the caller
// degrades to a plain completion.
type Service struct {
	engines   *search.Registry
	retriever ContentRetriever
	log       zerolog.Logger
}

// NewService wires the RAG orchestrator.
func NewService(engines *search.Registry, retriever ContentRetriever, log zerolog.Logger) *Service {
	return &Service{
		engines:   engines,
		retriever: retriever,
		log:       log.With().Str("component", "rag-service").Logger(),
	}
}

// Execute runs the RAG pipeline for one user message against the resolved
// model backend. When the decision stage declines, the returned Outcome has
// SearchPerformed=false and zero-value artifacts.
func (s *Service) Execute(ctx context.Context, userMessage string, model llm.Model, engineID search.EngineID) (Outcome, error) {
	outcome := Outcome{
		SearchQuery: userMessage,
		EngineID:    engineID,
	}

	s.log.Debug().Msg("checking if web search is needed")
	decision, err := model.GetCompletion(ctx, shouldUseWebSearchPrompt, []llm.Message{llm.UserMessage(userMessage)})
	if err != nil {
		return outcome, err
	}

	// Literal contract: only the exact token "true" triggers search. Any
	// other output, including case or punctuation variants, declines.
	if decision.Content != "true" {
		s.log.Debug().Str("decision", decision.Content).Msg("web search not needed")
		return outcome, nil
	}

	results, err := s.performWebSearch(ctx, userMessage, model, engineID)
	if err != nil {
		return outcome, err
	}

	aiResults := s.buildSearchContext(ctx, results, userMessage, model)

	outcome.SearchPerformed = true
	outcome.Results = results
	outcome.FormattedResults = formatResults(aiResults)
	outcome.TotalResults = len(results)
	return outcome, nil
}

// performWebSearch compresses the user message into a search term via the
// model and submits it to the chosen engine.
func (s *Service) performWebSearch(ctx context.Context, userMessage string, model llm.Model, engineID search.EngineID) ([]search.Result, error) {
	query, err := model.GetCompletion(ctx, generateSearchQueryPrompt, []llm.Message{llm.UserMessage(userMessage)})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("query", query.Content).Msg("generated search query")

	engine, err := s.engines.GetEngine(engineID)
	if err != nil {
		return nil, err
	}
	return engine.Search(ctx, query.Content, maxSearchResults)
}

// buildSearchContext retrieves and summarizes each result page. Failures
// are isolated per result: a page that cannot be fetched or summarized
// keeps its slot with the sentinel or an empty summary.
func (s *Service) buildSearchContext(ctx context.Context, results []search.Result, originalQuery string, model llm.Model) []search.AIResult {
	aiResults := make([]search.AIResult, 0, len(results))
	for _, result := range results {
		s.log.Info().Str("url", result.Link).Msg("retrieving page content")
		content := s.retriever.Retrieve(ctx, result.Link)

		aiResult := search.AIResult{Result: result}
		summary, err := s.summarizeContent(ctx, content, originalQuery, model)
		if err != nil {
			s.log.Warn().Err(err).Str("url", result.Link).Msg("summarization failed, keeping result without summary")
		} else {
			aiResult.Summary = summary
		}
		aiResults = append(aiResults, aiResult)
	}
	return aiResults
}

// summarizeContent asks the model for a summary of the page relative to
// the original user query, not the generated search term.
func (s *Service) summarizeContent(ctx context.Context, content, query string, model llm.Model) (string, error) {
	if content == "" {
		return noContentSentinel, nil
	}

	systemPrompt := fmt.Sprintf(summarizeWebContentPrompt, query, summaryCharacterLimit)
	prompt := fmt.Sprintf("search_query: %s\nweb_page_content:%s", query, content)
	summary, err := model.GetCompletion(ctx, systemPrompt, []llm.Message{llm.UserMessage(prompt)})
	if err != nil {
		return "", err
	}
	return summary.Content, nil
}

// formatResults renders the numbered source block injected into the chat
// context, one entry per result separated by blank lines.
func formatResults(results []search.AIResult) string {
	var b strings.Builder
	for i, result := range results {
		fmt.Fprintf(&b, "[Source %d] %s\n", i+1, result.Title)
		fmt.Fprintf(&b, "URL: %s\n", result.Link)
		fmt.Fprintf(&b, "Summary: %s\n\n", result.Summary)
	}
	return b.String()
}
