package requests

// DefaultModelID is used when a chat request omits the model id.
const DefaultModelID = "openai_gpt-4o-mini"

// MessagePayload is the inbound message body.
type MessagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest is the body for POST /v1/chat.
type ChatRequest struct {
	ConversationID string         `json:"conversation_id"`
	Message        MessagePayload `json:"message" binding:"required"`
	ModelID        string         `json:"model_id"`
}

// EffectiveModelID returns the requested model id or the default.
func (r *ChatRequest) EffectiveModelID() string {
	if r.ModelID == "" {
		return DefaultModelID
	}
	return r.ModelID
}
