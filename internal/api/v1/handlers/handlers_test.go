package handlers

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yourtranscript/internal/api/middleware"
	"yourtranscript/internal/api/v1/dto"
	"yourtranscript/internal/app/auth"
	"yourtranscript/internal/app/model"
)

// stubService scripts the orchestrator for handler tests.
type stubService struct {
	extractResult *dto.ExtractResult
	extractErr    error
	gotVideoID    string

	job    *model.Job
	jobErr error

	callbackStatus model.JobStatus
	callbackErr    error
	gotPayload     *dto.CallbackPayload

	transcript    *model.Transcript
	transcriptErr error

	history    []model.ExtractionHistoryItem
	historyErr error
	gotLimit   int
}

func (s *stubService) Extract(ctx context.Context, ident *auth.Identity, videoID string) (*dto.ExtractResult, error) {
	s.gotVideoID = videoID
	return s.extractResult, s.extractErr
}

func (s *stubService) JobStatus(ctx context.Context, jobID string) (*model.Job, error) {
	return s.job, s.jobErr
}

func (s *stubService) HandleCallback(ctx context.Context, payload *dto.CallbackPayload) (model.JobStatus, error) {
	s.gotPayload = payload
	return s.callbackStatus, s.callbackErr
}

func (s *stubService) GetTranscript(ctx context.Context, videoID string) (*model.Transcript, error) {
	return s.transcript, s.transcriptErr
}

func (s *stubService) RecentExtractions(ctx context.Context, userID string, limit int) ([]model.ExtractionHistoryItem, error) {
	s.gotLimit = limit
	return s.history, s.historyErr
}

// withIdentity fakes a passed auth middleware.
func withIdentity(ident *auth.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("identity", ident)
		c.Next()
	}
}

func newTestRouter(mws ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler(zap.NewNop()))
	router.Use(mws...)
	return router
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
