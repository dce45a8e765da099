package rag

import (
	"context"

	"llm-chat-server/internal/domain/search"
)

// ContentRetriever fetches clean text for a URL. Implementations return an
// empty string instead of an error when the page cannot be fetched or
// parsed; a single failed page must never abort a RAG run.
type ContentRetriever interface {
	Retrieve(ctx context.Context, url string) string
}

// Outcome is the transient result of one RAG run, consumed within the same
// chat turn and never persisted.
type Outcome struct {
	SearchPerformed  bool
	SearchQuery      string
	Results          []search.Result
	FormattedResults string
	TotalResults     int
	EngineID         search.EngineID
}
