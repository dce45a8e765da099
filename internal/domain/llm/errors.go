package llm

import (
	"fmt"
	"strings"
)

// ConfigurationError indicates a backend could not be constructed because
// required credentials or deployment identifiers are missing. Fatal for the
// affected backend only; never retried.
type ConfigurationError struct {
	Backend string
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("backend %s misconfigured: %s is not set", e.Backend, e.Missing)
}

// ModelNotFoundError is returned by the registry for unknown model ids.
type ModelNotFoundError struct {
	ModelID  string
	KnownIDs []string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("invalid model_id: %s, supported models: [%s]", e.ModelID, strings.Join(e.KnownIDs, ", "))
}

// GenerationError wraps any provider-side failure during completion:
// transport errors, timeouts, non-2xx statuses, or unparsable responses.
type GenerationError struct {
	ModelID string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("completion failed for model %s: %v", e.ModelID, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
