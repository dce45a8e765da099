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

// AzureClient serves gpt-4o-mini hosted on an Azure OpenAI deployment.
type AzureClient struct {
	httpClient *resty.Client
	path       string
	apiVersion string
	descriptor llm.ModelDescriptor
}

var _ llm.Model = (*AzureClient)(nil)

// AzureConfig carries the credentials for the Azure OpenAI backend.
type AzureConfig struct {
	APIKey     string
	Endpoint   string
	APIVersion string
	Deployment string
	Timeout    time.Duration
}

// NewAzureClient validates credentials and builds the long-lived backend.
func NewAzureClient(cfg AzureConfig) (*AzureClient, error) {
	if cfg.APIKey == "" {
		return nil, &llm.ConfigurationError{Backend: "azure", Missing: "AZURE_GPT4O_MINI_API_KEY"}
	}
	if cfg.Endpoint == "" {
		return nil, &llm.ConfigurationError{Backend: "azure", Missing: "AZURE_GPT4O_MINI_API_ENDPOINT"}
	}
	if cfg.APIVersion == "" {
		return nil, &llm.ConfigurationError{Backend: "azure", Missing: "AZURE_GPT4O_MINI_API_VERSION"}
	}
	if cfg.Deployment == "" {
		return nil, &llm.ConfigurationError{Backend: "azure", Missing: "AZURE_GPT4O_MINI_DEPLOYMENT"}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 75 * time.Second
	}

	return &AzureClient{
		httpClient: resty.New().
			SetBaseURL(cfg.Endpoint).
			SetHeader("Content-Type", "application/json").
			SetHeader("api-key", cfg.APIKey).
			SetTimeout(timeout),
		path:       fmt.Sprintf("/openai/deployments/%s/chat/completions", cfg.Deployment),
		apiVersion: cfg.APIVersion,
		descriptor: llm.ModelDescriptor{
			ModelID:         "azure_gpt-4o-mini",
			Name:            "GPT-4o-mini",
			Provider:        "Azure",
			Description:     "A smaller version of the GPT-4o model, optimized for faster inference and lower resource usage hosted on Azure",
			ContextLength:   128000,
			MaxOutputTokens: 16384,
		},
	}, nil
}

// Descriptor returns the static backend metadata.
func (c *AzureClient) Descriptor() llm.ModelDescriptor {
	return c.descriptor
}

// GetCompletion calls the Azure OpenAI deployment's chat completions
// endpoint. The deployment, not the request body, selects the model.
func (c *AzureClient) GetCompletion(ctx context.Context, systemInstruction string, messages []llm.Message) (llm.Message, error) {
	req := openai.ChatCompletionRequest{
		Messages: promptMessages(systemInstruction, messages),
	}

	var completion openai.ChatCompletionResponse
	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("api-version", c.apiVersion).
		SetBody(req).
		SetResult(&completion).
		Post(c.path)
	metrics.ProviderLatency.WithLabelValues("azure").Observe(time.Since(start).Seconds())

	return assistantMessage(c.descriptor.ModelID, &completion, resp, err)
}
