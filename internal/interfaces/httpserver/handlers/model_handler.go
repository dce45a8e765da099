package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"llm-chat-server/internal/interfaces/httpserver/responses"
)

// ModelHandler exposes the model catalog endpoints.
type ModelHandler struct {
	models ModelCatalog
	log    zerolog.Logger
}

// NewModelHandler constructs the handler.
func NewModelHandler(models ModelCatalog, log zerolog.Logger) *ModelHandler {
	return &ModelHandler{
		models: models,
		log:    log.With().Str("handler", "model").Logger(),
	}
}

// List handles GET /v1/models
// @Summary List available models
// @Tags Models
// @Produce json
// @Success 200 {object} responses.ModelListPayload
// @Router /v1/models [get]
func (h *ModelHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, responses.FromModelDescriptors(h.models.ListModels()))
}

// Get handles GET /v1/models/:model_id
// @Summary Get a model by ID
// @Tags Models
// @Produce json
// @Param model_id path string true "Model ID"
// @Success 200 {object} responses.ModelPayload
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/models/{model_id} [get]
func (h *ModelHandler) Get(c *gin.Context) {
	descriptor, err := h.models.GetDescriptor(c.Param("model_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get model")
		return
	}
	c.JSON(http.StatusOK, responses.FromModelDescriptor(descriptor))
}
