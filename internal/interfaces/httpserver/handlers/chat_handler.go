package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"llm-chat-server/internal/domain/chat"
	"llm-chat-server/internal/infrastructure/metrics"
	"llm-chat-server/internal/infrastructure/observability"
	"llm-chat-server/internal/interfaces/httpserver/requests"
	"llm-chat-server/internal/interfaces/httpserver/responses"
)

// ChatHandler exposes the chat completion endpoint.
type ChatHandler struct {
	service ChatService
	log     zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(service ChatService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With().Str("handler", "chat").Logger(),
	}
}

// Create handles POST /v1/chat
// @Summary Create a chat completion
// @Description Generates an assistant reply for a user message, optionally augmented with web search results
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body requests.ChatRequest true "Chat request"
// @Success 201 {object} responses.ChatResponsePayload
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /v1/chat [post]
func (h *ChatHandler) Create(c *gin.Context) {
	var req requests.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error(), Message: "invalid chat request"})
		return
	}

	message, err := chat.NewUserMessage(req.Message.Content)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error(), Message: "invalid chat message"})
		return
	}

	modelID := req.EffectiveModelID()

	ctx, span := observability.GetTracer().Start(c.Request.Context(), "chat.complete")
	result, err := h.service.CompleteChat(ctx, chat.CompletionRequest{
		ConversationID: req.ConversationID,
		Message:        message,
		ModelID:        modelID,
	})
	span.End()
	if err != nil {
		metrics.ChatCompletionsTotal.WithLabelValues(modelID, "error").Inc()
		h.log.Error().Err(err).Str("model_id", modelID).Msg("chat completion failed")
		responses.HandleError(c, err, "failed to generate chat completion")
		return
	}

	metrics.ChatCompletionsTotal.WithLabelValues(modelID, "ok").Inc()
	decision := "false"
	if result.SearchPerformed {
		decision = "true"
	}
	metrics.SearchDecisionsTotal.WithLabelValues(decision).Inc()
	c.JSON(http.StatusCreated, responses.FromCompletionResult(result))
}
