package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"llm-chat-server/internal/interfaces/httpserver/responses"
)

// ConversationHandler exposes the conversation endpoints.
type ConversationHandler struct {
	service ChatService
	log     zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(service ChatService, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: service,
		log:     log.With().Str("handler", "conversation").Logger(),
	}
}

// List handles GET /v1/conversations
// @Summary List conversations
// @Tags Conversations
// @Produce json
// @Success 200 {array} responses.ConversationPayload
// @Router /v1/conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	conversations := h.service.ListConversations(c.Request.Context())

	payload := make([]responses.ConversationPayload, 0, len(conversations))
	for _, conversation := range conversations {
		payload = append(payload, responses.FromConversation(conversation))
	}
	c.JSON(http.StatusOK, payload)
}

// Get handles GET /v1/conversations/:conversation_id
// @Summary Get a conversation
// @Tags Conversations
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Success 200 {object} responses.ConversationPayload
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/conversations/{conversation_id} [get]
func (h *ConversationHandler) Get(c *gin.Context) {
	id := c.Param("conversation_id")

	conversation, err := h.service.GetConversation(c.Request.Context(), id)
	if err != nil {
		responses.HandleError(c, err, "failed to get conversation")
		return
	}
	c.JSON(http.StatusOK, responses.FromConversation(conversation))
}

// Delete handles DELETE /v1/conversations/:conversation_id
// @Summary Delete a conversation
// @Tags Conversations
// @Param conversation_id path string true "Conversation ID"
// @Success 204
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/conversations/{conversation_id} [delete]
func (h *ConversationHandler) Delete(c *gin.Context) {
	id := c.Param("conversation_id")

	if err := h.service.DeleteConversation(c.Request.Context(), id); err != nil {
		responses.HandleError(c, err, "failed to delete conversation")
		return
	}
	c.Status(http.StatusNoContent)
}
