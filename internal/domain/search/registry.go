package search

import (
	"github.com/rs/zerolog"
)

// Registry maps engine ids to their long-lived backend instances. Like the
// model registry it is populated once at startup and read-only afterwards.
type Registry struct {
	engines map[EngineID]Engine
	order   []EngineID
}

// Builder constructs a single engine. Builders run independently during
// registry population so one misconfigured engine cannot block the rest.
type Builder func() (Engine, error)

// NewRegistry indexes the given engines in argument order.
func NewRegistry(engines ...Engine) *Registry {
	r := &Registry{engines: make(map[EngineID]Engine, len(engines))}
	for _, engine := range engines {
		id := engine.Descriptor().EngineID
		if _, dup := r.engines[id]; dup {
			continue
		}
		r.engines[id] = engine
		r.order = append(r.order, id)
	}
	return r
}

// BuildRegistry runs each builder in order and registers the engines that
// construct successfully. Construction failures are logged and skipped.
func BuildRegistry(log zerolog.Logger, builders []Builder) *Registry {
	engines := make([]Engine, 0, len(builders))
	for _, build := range builders {
		engine, err := build()
		if err != nil {
			log.Warn().Err(err).Msg("skipping search engine")
			continue
		}
		log.Info().Str("engine_id", string(engine.Descriptor().EngineID)).Msg("registered search engine")
		engines = append(engines, engine)
	}
	return NewRegistry(engines...)
}

// ListEngines enumerates descriptors in stable registration order.
func (r *Registry) ListEngines() []EngineDescriptor {
	descriptors := make([]EngineDescriptor, 0, len(r.order))
	for _, id := range r.order {
		descriptors = append(descriptors, r.engines[id].Descriptor())
	}
	return descriptors
}

// GetDescriptor returns metadata for an engine id.
func (r *Registry) GetDescriptor(engineID EngineID) (EngineDescriptor, error) {
	engine, ok := r.engines[engineID]
	if !ok {
		return EngineDescriptor{}, &EngineNotFoundError{EngineID: engineID, KnownIDs: r.order}
	}
	return engine.Descriptor(), nil
}

// GetEngine resolves an engine id to its backend instance.
func (r *Registry) GetEngine(engineID EngineID) (Engine, error) {
	engine, ok := r.engines[engineID]
	if !ok {
		return nil, &EngineNotFoundError{EngineID: engineID, KnownIDs: r.order}
	}
	return engine, nil
}
