package responses

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"llm-chat-server/internal/domain/chat"
	"llm-chat-server/internal/domain/llm"
	"llm-chat-server/internal/domain/search"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HandleError maps domain errors onto HTTP statuses and aborts the request.
func HandleError(reqCtx *gin.Context, err error, message string) {
	reqCtx.AbortWithStatusJSON(statusFor(err), ErrorResponse{
		Error:   err.Error(),
		Message: message,
	})
}

func statusFor(err error) int {
	var (
		notFound       *chat.NotFoundError
		modelNotFound  *llm.ModelNotFoundError
		engineNotFound *search.EngineNotFoundError
		generation     *llm.GenerationError
		query          *search.QueryError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &modelNotFound), errors.As(err, &engineNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat.ErrEmptyContent):
		return http.StatusBadRequest
	case errors.As(err, &generation), errors.As(err, &query):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// MessagePayload mirrors a conversation message to clients.
type MessagePayload struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SearchResultPayload surfaces the raw search result triple; generated
// summaries stay internal to prompt construction.
type SearchResultPayload struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// ChatResponsePayload is returned by POST /v1/chat.
type ChatResponsePayload struct {
	ConversationID  string                `json:"conversation_id"`
	Message         MessagePayload        `json:"message"`
	ModelID         string                `json:"model_id"`
	SearchPerformed bool                  `json:"search_performed"`
	SearchResults   []SearchResultPayload `json:"search_results"`
}

// ConversationPayload is returned by the conversation endpoints.
type ConversationPayload struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Messages  []MessagePayload `json:"messages"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// FromCompletionResult maps the domain result to its DTO.
func FromCompletionResult(result chat.CompletionResult) ChatResponsePayload {
	payload := ChatResponsePayload{
		ConversationID:  result.ConversationID,
		Message:         fromMessage(result.Message),
		ModelID:         result.ModelID,
		SearchPerformed: result.SearchPerformed,
		SearchResults:   make([]SearchResultPayload, 0, len(result.SearchResults)),
	}
	for _, r := range result.SearchResults {
		payload.SearchResults = append(payload.SearchResults, SearchResultPayload{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
		})
	}
	return payload
}

// FromConversation maps a conversation to its DTO.
func FromConversation(conversation chat.Conversation) ConversationPayload {
	payload := ConversationPayload{
		ID:        conversation.ID,
		Title:     conversation.Title,
		Messages:  make([]MessagePayload, 0, len(conversation.Messages)),
		CreatedAt: conversation.CreatedAt,
		UpdatedAt: conversation.UpdatedAt,
	}
	for _, m := range conversation.Messages {
		payload.Messages = append(payload.Messages, fromMessage(m))
	}
	return payload
}

func fromMessage(m chat.Message) MessagePayload {
	return MessagePayload{
		ID:      m.ID,
		Role:    string(m.Role),
		Content: m.Content,
	}
}
