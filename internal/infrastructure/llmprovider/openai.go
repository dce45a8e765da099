// Package llmprovider contains the concrete model backends registered
// behind the llm.Registry: OpenAI, Azure OpenAI, and Google Gemini. The
// OpenAI-compatible backends reuse go-openai's wire types over a resty
// transport; Gemini speaks its own generateContent format.
package llmprovider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sashabaranov/go-openai"

	"llm-chat-server/internal/domain/llm"
	"llm-chat-server/internal/infrastructure/metrics"
)

const openAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient serves gpt-4o-mini hosted on OpenAI.
type OpenAIClient struct {
	httpClient *resty.Client
	model      string
	descriptor llm.ModelDescriptor
}

var _ llm.Model = (*OpenAIClient)(nil)

// OpenAIConfig carries the credentials for the OpenAI backend.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // defaults to the public API, overridable for tests
	Timeout time.Duration
}

// NewOpenAIClient validates credentials and builds the long-lived backend.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, &llm.ConfigurationError{Backend: "openai", Missing: "OPENAI_API_KEY"}
	}
	if cfg.Model == "" {
		return nil, &llm.ConfigurationError{Backend: "openai", Missing: "OPENAI_MODEL"}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 75 * time.Second
	}

	return &OpenAIClient{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetAuthToken(cfg.APIKey).
			SetTimeout(timeout),
		model: cfg.Model,
		descriptor: llm.ModelDescriptor{
			ModelID:         "openai_gpt-4o-mini",
			Name:            "GPT-4o-mini",
			Provider:        "OpenAI",
			Description:     "A smaller version of the GPT-4o model, optimized for faster inference and lower resource usage hosted on OpenAI",
			ContextLength:   128000,
			MaxOutputTokens: 16384,
		},
	}, nil
}

// Descriptor returns the static backend metadata.
func (c *OpenAIClient) Descriptor() llm.ModelDescriptor {
	return c.descriptor
}

// GetCompletion calls the OpenAI chat completions endpoint.
func (c *OpenAIClient) GetCompletion(ctx context.Context, systemInstruction string, messages []llm.Message) (llm.Message, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: promptMessages(systemInstruction, messages),
	}

	var completion openai.ChatCompletionResponse
	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&completion).
		Post("/chat/completions")
	metrics.ProviderLatency.WithLabelValues("openai").Observe(time.Since(start).Seconds())

	return assistantMessage(c.descriptor.ModelID, &completion, resp, err)
}

// promptMessages prepends the system instruction to the mapped message list.
func promptMessages(systemInstruction string, messages []llm.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if systemInstruction != "" {
		out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemInstruction})
	}
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}
	return out
}

// assistantMessage folds transport, status, and shape failures into a
// single GenerationError and extracts the first choice otherwise.
func assistantMessage(modelID string, completion *openai.ChatCompletionResponse, resp *resty.Response, err error) (llm.Message, error) {
	if err != nil {
		return llm.Message{}, &llm.GenerationError{ModelID: modelID, Err: err}
	}
	if resp.IsError() {
		return llm.Message{}, &llm.GenerationError{
			ModelID: modelID,
			Err:     fmt.Errorf("provider returned status %d: %s", resp.StatusCode(), resp.String()),
		}
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return llm.Message{}, &llm.GenerationError{ModelID: modelID, Err: fmt.Errorf("provider returned no completion choices")}
	}
	return llm.Message{Role: llm.RoleAssistant, Content: completion.Choices[0].Message.Content}, nil
}
