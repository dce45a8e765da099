package search

import (
	"fmt"
	"strings"
)

// QueryErrorKind classifies why a search call failed.
type QueryErrorKind string

const (
	QueryErrorEmptyQuery QueryErrorKind = "empty_query"
	QueryErrorAuth       QueryErrorKind = "auth"
	QueryErrorRateLimit  QueryErrorKind = "rate_limit"
	QueryErrorTimeout    QueryErrorKind = "timeout"
	QueryErrorConnection QueryErrorKind = "connection"
	QueryErrorGeneric    QueryErrorKind = "generic"
)

// QueryError is returned when a search call fails.
type QueryError struct {
	Engine EngineID
	Kind   QueryErrorKind
	Err    error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("search on %s failed (%s): %v", e.Engine, e.Kind, e.Err)
	}
	return fmt.Sprintf("search on %s failed (%s)", e.Engine, e.Kind)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// EngineConfigError indicates an engine could not be constructed because
// required credentials are missing.
type EngineConfigError struct {
	Engine  EngineID
	Missing string
}

func (e *EngineConfigError) Error() string {
	return fmt.Sprintf("search engine %s misconfigured: %s is not set", e.Engine, e.Missing)
}

// EngineNotFoundError is returned by the registry for unknown engine ids.
type EngineNotFoundError struct {
	EngineID EngineID
	KnownIDs []EngineID
}

func (e *EngineNotFoundError) Error() string {
	known := make([]string, 0, len(e.KnownIDs))
	for _, id := range e.KnownIDs {
		known = append(known, string(id))
	}
	return fmt.Sprintf("invalid engine_id: %s, supported engines: [%s]", e.EngineID, strings.Join(known, ", "))
}
