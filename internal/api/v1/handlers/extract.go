package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yourtranscript/internal/api/errors"
	"yourtranscript/internal/api/middleware"
	"yourtranscript/internal/api/v1/dto"
	"yourtranscript/internal/api/v1/services"
)

// ExtractHandler handles transcript extraction and job polling endpoints
type ExtractHandler struct {
	service services.ExtractionService
}

// NewExtractHandler creates a new extraction handler
func NewExtractHandler(service services.ExtractionService) *ExtractHandler {
	return &ExtractHandler{
		service: service,
	}
}

// Extract handles POST /api/v1/extract
// Serves a transcript from a cache tier, a synchronous fetch, or accepts
// an asynchronous dispatch.
func (h *ExtractHandler) Extract(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		middleware.HandleError(c, errors.NewUnauthorizedError("Unauthorized"))
		return
	}

	var req dto.ExtractRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	result, err := h.service.Extract(c.Request.Context(), ident, req.VideoID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	if result.Job != nil {
		c.JSON(http.StatusOK, result.Job)
		return
	}
	c.JSON(http.StatusOK, result.Transcript)
}

// Status handles GET /api/v1/extract/status?job_id=...
// Polls an asynchronous job. Expired, consumed, and never-dispatched
// jobs all read as 404.
func (h *ExtractHandler) Status(c *gin.Context) {
	jobID := c.Query("job_id")
	if jobID == "" {
		middleware.HandleError(c, errors.NewBadRequestError("job_id is required"))
		return
	}

	job, err := h.service.JobStatus(c.Request.Context(), jobID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewJobStatusResponse(job))
}
