package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yourtranscript/internal/api/errors"
	"yourtranscript/internal/api/middleware"
	"yourtranscript/internal/api/v1/dto"
	"yourtranscript/internal/api/v1/services"
	"yourtranscript/internal/app/queue"
)

// CallbackHandler ingests signed result deliveries from the extraction
// worker. It is the worker's endpoint, not a user-facing one: the
// caller authenticates with a body signature instead of a bearer token.
type CallbackHandler struct {
	receiver *queue.Receiver
	service  services.ExtractionService
	logger   *zap.Logger
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(receiver *queue.Receiver, service services.ExtractionService, logger *zap.Logger) *CallbackHandler {
	return &CallbackHandler{
		receiver: receiver,
		service:  service,
		logger:   logger,
	}
}

// Callback handles POST /api/v1/extract/callback
// The signature is verified over the verbatim body bytes before any
// parsing; nothing is mutated on a verification failure.
func (h *CallbackHandler) Callback(c *gin.Context) {
	signature := c.GetHeader(queue.SignatureHeader)
	if signature == "" {
		middleware.HandleError(c, errors.NewUnauthorizedError("Missing signature"))
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Failed to read request body"))
		return
	}

	if err := h.receiver.Verify(body, signature); err != nil {
		h.logger.Warn("callback signature rejected",
			zap.String("request_id", c.GetString("request_id")),
		)
		middleware.HandleError(c, errors.NewUnauthorizedError("Invalid signature"))
		return
	}

	var payload dto.CallbackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Invalid JSON body"))
		return
	}
	if err := payload.Validate(); err != nil {
		middleware.HandleError(c, err)
		return
	}

	status, err := h.service.HandleCallback(c.Request.Context(), &payload)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(status)})
}
