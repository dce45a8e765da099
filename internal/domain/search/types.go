// Package search defines the capability contract shared by every search
// engine backend and the registry that resolves engine ids to backends.
package search

import "context"

// EngineID identifies a registered search engine.
type EngineID string

const (
	EngineGoogle EngineID = "google"
	EngineSerper EngineID = "serper"
)

// EngineDescriptor is static read-only metadata about an engine.
type EngineDescriptor struct {
	EngineID           EngineID `json:"engine_id"`
	Name               string   `json:"name"`
	MaxResultsPerQuery int      `json:"max_results_per_query"`
}

// Result is a single item returned by an engine.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// AIResult extends Result with a generated summary of the page behind the
// link. An empty summary means retrieval or summarization failed for that
// item, which is not fatal.
type AIResult struct {
	Result
	Summary string `json:"summary"`
}

// Engine is the uniform contract every search backend implements. Search
// clamps maxResults to the engine's advertised per-query maximum and
// returns an empty slice, not an error, when a successful call yields no
// matches. Failures surface as *QueryError.
type Engine interface {
	Descriptor() EngineDescriptor
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}
