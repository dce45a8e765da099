package llmprovider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"llm-chat-server/internal/domain/llm"
	"llm-chat-server/internal/infrastructure/metrics"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient serves Gemini 2.0 Flash via the Generative Language API.
type GeminiClient struct {
	httpClient *resty.Client
	model      string
	apiKey     string
	descriptor llm.ModelDescriptor
}

var _ llm.Model = (*GeminiClient)(nil)

// GeminiConfig carries the credentials for the Gemini backend.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // overridable for tests
	Timeout time.Duration
}

// generateContentRequest is the Gemini generateContent payload.
type generateContentRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// generateContentResponse captures the candidate fields we read.
type generateContentResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// NewGeminiClient validates credentials and builds the long-lived backend.
func NewGeminiClient(cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, &llm.ConfigurationError{Backend: "gemini", Missing: "GOOGLE_GEMINI2_FLASH_API_KEY"}
	}
	if cfg.Model == "" {
		return nil, &llm.ConfigurationError{Backend: "gemini", Missing: "GOOGLE_GEMINI2_FLASH_MODEL"}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 75 * time.Second
	}

	return &GeminiClient{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
		model:  cfg.Model,
		apiKey: cfg.APIKey,
		descriptor: llm.ModelDescriptor{
			ModelID:         "google_gemini-2.0-flash",
			Name:            "Gemini 2.0 Flash",
			Provider:        "Google",
			Description:     "A flash-optimized version of the Gemini 2.0 model, designed for faster inference and lower resource usage hosted on Google",
			ContextLength:   1048576,
			MaxOutputTokens: 8192,
		},
	}, nil
}

// Descriptor returns the static backend metadata.
func (c *GeminiClient) Descriptor() llm.ModelDescriptor {
	return c.descriptor
}

// GetCompletion calls the Gemini generateContent endpoint. Assistant turns
// map to Gemini's "model" role; system and developer turns fold into user
// turns since only one system instruction slot exists.
func (c *GeminiClient) GetCompletion(ctx context.Context, systemInstruction string, messages []llm.Message) (llm.Message, error) {
	req := generateContentRequest{
		Contents: make([]geminiContent, 0, len(messages)),
	}
	if systemInstruction != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}}
	}
	for _, m := range messages {
		role := "user"
		if m.Role == llm.RoleAssistant {
			role = "model"
		}
		req.Contents = append(req.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Content}},
		})
	}

	var completion generateContentResponse
	start := time.Now()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&completion).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	metrics.ProviderLatency.WithLabelValues("google").Observe(time.Since(start).Seconds())

	if err != nil {
		return llm.Message{}, &llm.GenerationError{ModelID: c.descriptor.ModelID, Err: err}
	}
	if resp.IsError() {
		return llm.Message{}, &llm.GenerationError{
			ModelID: c.descriptor.ModelID,
			Err:     fmt.Errorf("provider returned status %d: %s", resp.StatusCode(), resp.String()),
		}
	}
	if len(completion.Candidates) == 0 || len(completion.Candidates[0].Content.Parts) == 0 {
		return llm.Message{}, &llm.GenerationError{ModelID: c.descriptor.ModelID, Err: fmt.Errorf("provider returned no candidates")}
	}

	return llm.Message{Role: llm.RoleAssistant, Content: completion.Candidates[0].Content.Parts[0].Text}, nil
}
