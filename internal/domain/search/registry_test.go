package search_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-chat-server/internal/domain/search"
)

// MockEngine is a scriptable search.Engine for registry tests.
type MockEngine struct {
	EngineID   search.EngineID
	SearchFunc func(ctx context.Context, query string, maxResults int) ([]search.Result, error)
}

func (m *MockEngine) Descriptor() search.EngineDescriptor {
	return search.EngineDescriptor{EngineID: m.EngineID, Name: string(m.EngineID), MaxResultsPerQuery: 10}
}

func (m *MockEngine) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, maxResults)
	}
	return nil, nil
}

func TestRegistryListPreservesRegistrationOrder(t *testing.T) {
	registry := search.NewRegistry(
		&MockEngine{EngineID: search.EngineGoogle},
		&MockEngine{EngineID: search.EngineSerper},
	)

	descriptors := registry.ListEngines()
	require.Len(t, descriptors, 2)
	assert.Equal(t, search.EngineGoogle, descriptors[0].EngineID)
	assert.Equal(t, search.EngineSerper, descriptors[1].EngineID)
}

func TestRegistryGetEngineUnknownID(t *testing.T) {
	registry := search.NewRegistry(&MockEngine{EngineID: search.EngineGoogle})

	_, err := registry.GetEngine("bing")

	var notFound *search.EngineNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "invalid engine_id: bing")
	assert.Contains(t, err.Error(), "google")
}

func TestBuildRegistrySkipsFailedBuilders(t *testing.T) {
	builders := []search.Builder{
		func() (search.Engine, error) {
			return nil, &search.EngineConfigError{Engine: search.EngineSerper, Missing: "SERPER_API_KEY"}
		},
		func() (search.Engine, error) {
			return &MockEngine{EngineID: search.EngineGoogle}, nil
		},
	}

	registry := search.BuildRegistry(zerolog.Nop(), builders)

	descriptors := registry.ListEngines()
	require.Len(t, descriptors, 1)
	assert.Equal(t, search.EngineGoogle, descriptors[0].EngineID)
}
