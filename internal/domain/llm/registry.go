package llm

import (
	"github.com/rs/zerolog"
)

// Registry maps model ids to their long-lived backend instances. It is
// populated once at startup and read-only afterwards, so unsynchronized
// concurrent reads are safe.
type Registry struct {
	backends map[string]Model
	order    []string
}

// Builder constructs a single backend. Builders run independently during
// registry population so one misconfigured backend cannot block the rest.
type Builder func() (Model, error)

// NewRegistry indexes the given backends in argument order.
func NewRegistry(backends ...Model) *Registry {
	r := &Registry{backends: make(map[string]Model, len(backends))}
	for _, backend := range backends {
		id := backend.Descriptor().ModelID
		if _, dup := r.backends[id]; dup {
			continue
		}
		r.backends[id] = backend
		r.order = append(r.order, id)
	}
	return r
}

// BuildRegistry runs each builder in order and registers the backends that
// construct successfully. Construction failures are logged and skipped.
func BuildRegistry(log zerolog.Logger, builders []Builder) *Registry {
	backends := make([]Model, 0, len(builders))
	for _, build := range builders {
		backend, err := build()
		if err != nil {
			log.Warn().Err(err).Msg("skipping model backend")
			continue
		}
		log.Info().Str("model_id", backend.Descriptor().ModelID).Msg("registered model backend")
		backends = append(backends, backend)
	}
	return NewRegistry(backends...)
}

// ListModels enumerates descriptors in stable registration order.
func (r *Registry) ListModels() []ModelDescriptor {
	descriptors := make([]ModelDescriptor, 0, len(r.order))
	for _, id := range r.order {
		descriptors = append(descriptors, r.backends[id].Descriptor())
	}
	return descriptors
}

// GetDescriptor returns metadata for a model id.
func (r *Registry) GetDescriptor(modelID string) (ModelDescriptor, error) {
	backend, ok := r.backends[modelID]
	if !ok {
		return ModelDescriptor{}, &ModelNotFoundError{ModelID: modelID, KnownIDs: r.order}
	}
	return backend.Descriptor(), nil
}

// GetBackend resolves a model id to its backend instance.
func (r *Registry) GetBackend(modelID string) (Model, error) {
	backend, ok := r.backends[modelID]
	if !ok {
		return nil, &ModelNotFoundError{ModelID: modelID, KnownIDs: r.order}
	}
	return backend, nil
}
