package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yourtranscript/internal/api/errors"
	"yourtranscript/internal/api/v1/dto"
	"yourtranscript/internal/app/model"
)

func setupTranscriptsRouter(svc *stubService, mws ...gin.HandlerFunc) *gin.Engine {
	router := newTestRouter(mws...)
	h := NewTranscriptsHandler(svc)
	router.GET("/transcripts/recent", h.Recent)
	router.GET("/transcripts/:video_id", h.Get)
	return router
}

func TestGetTranscriptDetail(t *testing.T) {
	updatedAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc := &stubService{transcript: &model.Transcript{
		VideoID:   "abc12345678",
		Language:  "en",
		Segments:  []model.TranscriptSegment{{Text: "hello"}},
		TextBlob:  "hello",
		UpdatedAt: updatedAt,
	}}
	router := setupTranscriptsRouter(svc, withIdentity(freeIdentity()))

	w := perform(router, http.MethodGet, "/transcripts/abc12345678", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TranscriptDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "abc12345678", resp.VideoID)
	assert.Equal(t, "hello", resp.TextBlob)
	assert.Equal(t, "2026-03-15T10:00:00Z", resp.UpdatedAt)
}

func TestGetTranscriptNotFound(t *testing.T) {
	svc := &stubService{transcriptErr: errors.NewNotFoundError("transcript")}
	router := setupTranscriptsRouter(svc, withIdentity(freeIdentity()))

	w := perform(router, http.MethodGet, "/transcripts/unknownvid0", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecentDefaultLimit(t *testing.T) {
	svc := &stubService{history: []model.ExtractionHistoryItem{
		{VideoID: "abc12345678", CreatedAt: time.Now()},
	}}
	router := setupTranscriptsRouter(svc, withIdentity(freeIdentity()))

	w := perform(router, http.MethodGet, "/transcripts/recent", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, svc.gotLimit)

	var resp dto.HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
}

func TestRecentLimitBounds(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLimit  int
	}{
		{"explicit limit", "?limit=50", http.StatusOK, 50},
		{"minimum", "?limit=1", http.StatusOK, 1},
		{"maximum", "?limit=100", http.StatusOK, 100},
		{"zero", "?limit=0", http.StatusBadRequest, 0},
		{"over maximum", "?limit=101", http.StatusBadRequest, 0},
		{"not a number", "?limit=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			router := setupTranscriptsRouter(svc, withIdentity(freeIdentity()))

			w := perform(router, http.MethodGet, "/transcripts/recent"+tt.query, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantLimit, svc.gotLimit)
			}
		})
	}
}

func TestRecentWithoutIdentity(t *testing.T) {
	router := setupTranscriptsRouter(&stubService{})

	w := perform(router, http.MethodGet, "/transcripts/recent", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
