package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"yourtranscript/internal/api/errors"
	"yourtranscript/internal/api/middleware"
	"yourtranscript/internal/api/v1/dto"
	"yourtranscript/internal/api/v1/services"
)

const defaultHistoryLimit = 20

// TranscriptsHandler serves stored transcripts and extraction history.
type TranscriptsHandler struct {
	service services.ExtractionService
}

// NewTranscriptsHandler creates a new transcripts handler
func NewTranscriptsHandler(service services.ExtractionService) *TranscriptsHandler {
	return &TranscriptsHandler{
		service: service,
	}
}

// Get handles GET /api/v1/transcripts/:video_id
func (h *TranscriptsHandler) Get(c *gin.Context) {
	videoID := c.Param("video_id")

	t, err := h.service.GetTranscript(c.Request.Context(), videoID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TranscriptDetailResponse{
		VideoID:   t.VideoID,
		Segments:  t.Segments,
		Language:  t.Language,
		TextBlob:  t.TextBlob,
		UpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

// Recent handles GET /api/v1/transcripts/recent
func (h *TranscriptsHandler) Recent(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		middleware.HandleError(c, errors.NewUnauthorizedError("Unauthorized"))
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			middleware.HandleError(c, errors.NewBadRequestError("limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	items, err := h.service.RecentExtractions(c.Request.Context(), ident.UserID, limit)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{Items: items})
}
