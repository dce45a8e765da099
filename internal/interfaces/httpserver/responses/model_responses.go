package responses

import "llm-chat-server/internal/domain/llm"

// ModelPayload describes a chat model available for completion requests.
type ModelPayload struct {
	ModelID         string `json:"model_id"`
	Name            string `json:"name"`
	Provider        string `json:"provider"`
	Description     string `json:"description,omitempty"`
	ContextLength   int    `json:"context_length"`
	MaxOutputTokens int    `json:"max_output_tokens"`
}

// ModelListPayload wraps the model listing.
type ModelListPayload struct {
	Models []ModelPayload `json:"models"`
}

func FromModelDescriptor(d llm.ModelDescriptor) ModelPayload {
	return ModelPayload{
		ModelID:         d.ModelID,
		Name:            d.Name,
		Provider:        d.Provider,
		Description:     d.Description,
		ContextLength:   d.ContextLength,
		MaxOutputTokens: d.MaxOutputTokens,
	}
}

func FromModelDescriptors(descriptors []llm.ModelDescriptor) ModelListPayload {
	models := make([]ModelPayload, 0, len(descriptors))
	for _, d := range descriptors {
		models = append(models, FromModelDescriptor(d))
	}
	return ModelListPayload{Models: models}
}
