package llmprovider_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-chat-server/internal/domain/llm"
	"llm-chat-server/internal/infrastructure/llmprovider"
)

type recordedRequest struct {
	Path   string
	Query  string
	Auth   string
	APIKey string
	Body   map[string]any
}

func completionServer(t *testing.T, status int, response string, recorded *recordedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.Path = r.URL.Path
		recorded.Query = r.URL.RawQuery
		recorded.Auth = r.Header.Get("Authorization")
		recorded.APIKey = r.Header.Get("api-key")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		recorded.Body = body

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
}

const openAIReply = `{"choices":[{"index":0,"message":{"role":"assistant","content":"Paris."},"finish_reason":"stop"}]}`

func TestOpenAIClientRequiresCredentials(t *testing.T) {
	_, err := llmprovider.NewOpenAIClient(llmprovider.OpenAIConfig{Model: "gpt-4o-mini"})

	var cfgErr *llm.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "OPENAI_API_KEY", cfgErr.Missing)
}

func TestOpenAIClientGetCompletion(t *testing.T) {
	var recorded recordedRequest
	server := completionServer(t, http.StatusOK, openAIReply, &recorded)
	defer server.Close()

	client, err := llmprovider.NewOpenAIClient(llmprovider.OpenAIConfig{
		APIKey:  "sk-test",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	reply, err := client.GetCompletion(context.Background(), "You are helpful.", []llm.Message{
		llm.UserMessage("What is the capital of France?"),
	})
	require.NoError(t, err)

	assert.Equal(t, llm.RoleAssistant, reply.Role)
	assert.Equal(t, "Paris.", reply.Content)

	assert.Equal(t, "/chat/completions", recorded.Path)
	assert.Equal(t, "Bearer sk-test", recorded.Auth)
	assert.Equal(t, "gpt-4o-mini", recorded.Body["model"])

	messages := recorded.Body["messages"].([]any)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "You are helpful.", first["content"])
}

func TestOpenAIClientProviderError(t *testing.T) {
	var recorded recordedRequest
	server := completionServer(t, http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`, &recorded)
	defer server.Close()

	client, err := llmprovider.NewOpenAIClient(llmprovider.OpenAIConfig{
		APIKey:  "sk-test",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	_, err = client.GetCompletion(context.Background(), "", []llm.Message{llm.UserMessage("hi")})

	var genErr *llm.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "openai_gpt-4o-mini", genErr.ModelID)
	assert.Contains(t, genErr.Error(), "429")
}

func TestOpenAIClientEmptyChoices(t *testing.T) {
	var recorded recordedRequest
	server := completionServer(t, http.StatusOK, `{"choices":[]}`, &recorded)
	defer server.Close()

	client, err := llmprovider.NewOpenAIClient(llmprovider.OpenAIConfig{
		APIKey:  "sk-test",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	_, err = client.GetCompletion(context.Background(), "", []llm.Message{llm.UserMessage("hi")})

	var genErr *llm.GenerationError
	assert.ErrorAs(t, err, &genErr)
}
