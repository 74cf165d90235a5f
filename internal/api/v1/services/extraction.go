package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"yourtranscript/internal/api/errors"
	"yourtranscript/internal/api/v1/dto"
	"yourtranscript/internal/app/auth"
	"yourtranscript/internal/app/model"
	"yourtranscript/internal/app/queue"
	"yourtranscript/internal/app/repository"
	"yourtranscript/internal/app/worker"
	"yourtranscript/internal/metrics"
)

// Config holds the orchestrator's behavior switches.
type Config struct {
	// AsyncDispatch routes cache misses through the queue instead of
	// calling the worker inline.
	AsyncDispatch bool
	// CallbackURL is where the worker delivers asynchronous results.
	CallbackURL string
}

// ExtractionServiceImpl implements ExtractionService.
//
// There is deliberately no single-flight coalescing here: two
// simultaneous misses for the same video both extract, and both upsert
// the same durable row. Upserts are idempotent and deterministic per
// video, so last-writer-wins is safe; the cost of the duplicate fetch
// was judged cheaper than a cross-request lock.
type ExtractionServiceImpl struct {
	transcripts repository.TranscriptDAO
	logs        repository.RequestLogDAO
	cache       TranscriptCache
	jobs        JobStore
	dispatcher  Dispatcher
	worker      WorkerClient
	quota       QuotaLedger
	cfg         Config
	logger      *zap.Logger
	now         func() time.Time
}

// NewExtractionService creates the orchestration service.
func NewExtractionService(
	transcripts repository.TranscriptDAO,
	logs repository.RequestLogDAO,
	cache TranscriptCache,
	jobs JobStore,
	dispatcher Dispatcher,
	workerClient WorkerClient,
	quotaLedger QuotaLedger,
	cfg Config,
	logger *zap.Logger,
) ExtractionService {
	return &ExtractionServiceImpl{
		transcripts: transcripts,
		logs:        logs,
		cache:       cache,
		jobs:        jobs,
		dispatcher:  dispatcher,
		worker:      workerClient,
		quota:       quotaLedger,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// Extract resolves one transcript request: quota check, cache tiers in
// order, then synchronous fetch or asynchronous dispatch.
func (s *ExtractionServiceImpl) Extract(ctx context.Context, ident *auth.Identity, videoID string) (*dto.ExtractResult, error) {
	start := s.now()

	decision := s.quota.CheckAndReserve(ctx, ident.UserID, ident.Tier)
	if !decision.Allowed {
		s.logRequest(ctx, ident.UserID, videoID, model.OutcomeError, model.ProviderRateLimit, start, "daily quota exceeded")
		return nil, errors.NewQuotaExceededError(s.quota.ExceededMessage())
	}

	if t, provider := s.resolveCached(ctx, videoID); t != nil {
		s.logRequest(ctx, ident.UserID, videoID, model.OutcomeCached, provider, start, "")
		s.quota.Increment(ctx, ident.UserID)
		return &dto.ExtractResult{Transcript: dto.NewTranscriptResponse(t, true)}, nil
	}

	if s.cfg.AsyncDispatch {
		return s.dispatchAsync(ctx, ident, videoID, start)
	}
	return s.extractSync(ctx, ident, videoID, start)
}

// resolveCached tries the fast tier then the durable tier. Tier failures
// are logged and treated as misses; a durable hit backfills the fast
// tier so the next request stops at tier one.
func (s *ExtractionServiceImpl) resolveCached(ctx context.Context, videoID string) (*model.Transcript, model.Provider) {
	t, err := s.cache.Get(ctx, videoID)
	if err != nil {
		s.logger.Warn("fast cache lookup failed", zap.String("video_id", videoID), zap.Error(err))
		metrics.CacheLookups.WithLabelValues("redis", "error").Inc()
	} else if t != nil {
		metrics.CacheLookups.WithLabelValues("redis", "hit").Inc()
		return t, model.ProviderCache
	} else {
		metrics.CacheLookups.WithLabelValues("redis", "miss").Inc()
	}

	t, err = s.transcripts.GetByVideoID(ctx, videoID)
	if err != nil {
		s.logger.Warn("durable cache lookup failed", zap.String("video_id", videoID), zap.Error(err))
		metrics.CacheLookups.WithLabelValues("db", "error").Inc()
		return nil, ""
	}
	if t == nil {
		metrics.CacheLookups.WithLabelValues("db", "miss").Inc()
		return nil, ""
	}
	metrics.CacheLookups.WithLabelValues("db", "hit").Inc()

	if err := s.cache.Set(ctx, t); err != nil {
		s.logger.Warn("fast cache backfill failed", zap.String("video_id", videoID), zap.Error(err))
	}
	return t, model.ProviderDBCache
}

// extractSync calls the worker inline and persists the result.
func (s *ExtractionServiceImpl) extractSync(ctx context.Context, ident *auth.Identity, videoID string, start time.Time) (*dto.ExtractResult, error) {
	result, err := s.worker.Extract(ctx, videoID)
	if err != nil {
		var workerErr *worker.Error
		if stderrors.As(err, &workerErr) {
			s.logger.Error("worker extraction failed",
				zap.String("video_id", videoID),
				zap.Int("status", workerErr.StatusCode),
				zap.String("detail", workerErr.Detail),
			)
			s.logRequest(ctx, ident.UserID, videoID, model.OutcomeError, model.ProviderError, start, workerErr.Detail)
			return nil, errors.NewWorkerFailureError(workerErr.Detail, workerErr.StatusCode)
		}

		s.logger.Error("worker unreachable", zap.String("video_id", videoID), zap.Error(err))
		s.logRequest(ctx, ident.UserID, videoID, model.OutcomeError, model.ProviderError, start, err.Error())
		return nil, errors.NewServiceUnavailableError("Failed to connect to extraction service")
	}

	t := s.buildTranscript(videoID, result.Segments, result.Language)
	if err := s.transcripts.Upsert(ctx, t); err != nil {
		s.logger.Error("durable transcript write failed", zap.String("video_id", videoID), zap.Error(err))
	}
	if err := s.cache.Set(ctx, t); err != nil {
		s.logger.Warn("fast cache write failed", zap.String("video_id", videoID), zap.Error(err))
	}

	s.logRequest(ctx, ident.UserID, videoID, model.OutcomeSuccess, model.ProviderYouTubeAPI, start, "")
	s.quota.Increment(ctx, ident.UserID)

	return &dto.ExtractResult{Transcript: dto.NewTranscriptResponse(t, false)}, nil
}

// dispatchAsync writes the processing job record, then publishes to the
// queue. The order matters: the job record must exist before the worker
// can possibly call back. If the publish fails the job record is left to
// expire on its own; pollers see not-found, never a half-dispatched job.
func (s *ExtractionServiceImpl) dispatchAsync(ctx context.Context, ident *auth.Identity, videoID string, start time.Time) (*dto.ExtractResult, error) {
	jobID := fmt.Sprintf("job:%s:%d", videoID, s.now().UnixNano())

	job := &model.Job{
		Status:  model.JobProcessing,
		VideoID: videoID,
		UserID:  ident.UserID,
	}
	if err := s.jobs.Put(ctx, jobID, job); err != nil {
		s.logger.Error("job record write failed", zap.String("job_id", jobID), zap.Error(err))
		s.logRequest(ctx, ident.UserID, videoID, model.OutcomeError, model.ProviderError, start, "job store write failed: "+err.Error())
		return nil, errors.NewServiceUnavailableError("Failed to queue extraction, please try again")
	}

	msg := queue.Message{
		JobID:       jobID,
		VideoID:     videoID,
		UserID:      ident.UserID,
		CallbackURL: s.cfg.CallbackURL,
	}
	if err := s.dispatcher.Publish(ctx, msg); err != nil {
		s.logger.Error("queue publish failed", zap.String("job_id", jobID), zap.Error(err))
		s.logRequest(ctx, ident.UserID, videoID, model.OutcomeError, model.ProviderError, start, "queue publish failed: "+err.Error())
		return nil, errors.NewServiceUnavailableError("Failed to queue extraction, please try again")
	}

	return &dto.ExtractResult{Job: &dto.ProcessingResponse{
		Status:  string(model.JobProcessing),
		JobID:   jobID,
		VideoID: videoID,
	}}, nil
}

// JobStatus looks up an asynchronous job. Absent, expired, and already
// consumed records are indistinguishable; all read as not found. A
// terminal record is deleted after the response, off the request path.
func (s *ExtractionServiceImpl) JobStatus(ctx context.Context, jobID string) (*model.Job, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		s.logger.Error("job status read failed", zap.String("job_id", jobID), zap.Error(err))
		return nil, errors.NewInternalError("Failed to check job status")
	}
	if job == nil {
		return nil, errors.NewNotFoundMessageError("Job not found or expired")
	}

	if job.Terminal() {
		go func() {
			cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.jobs.Delete(cleanupCtx, jobID); err != nil {
				s.logger.Warn("job cleanup failed", zap.String("job_id", jobID), zap.Error(err))
			}
		}()
	}

	return job, nil
}

// HandleCallback ingests a verified worker result. Every write here is
// independent: a failure in one tier is logged and must not stop the
// others, because this is the only place async success is recorded.
func (s *ExtractionServiceImpl) HandleCallback(ctx context.Context, payload *dto.CallbackPayload) (model.JobStatus, error) {
	if payload.Error != "" {
		failed := &model.Job{
			Status:  model.JobFailed,
			VideoID: payload.VideoID,
			UserID:  payload.UserID,
			Error:   payload.Error,
		}
		if err := s.jobs.Put(ctx, payload.JobID, failed); err != nil {
			s.logger.Error("failed job record write failed", zap.String("job_id", payload.JobID), zap.Error(err))
		}
		s.logRequest(ctx, payload.UserID, payload.VideoID, model.OutcomeError, model.ProviderError, s.now(), payload.Error)
		metrics.CallbacksTotal.WithLabelValues("failed").Inc()
		return model.JobFailed, nil
	}

	t := s.buildTranscript(payload.VideoID, payload.Segments, payload.Language)
	if err := s.transcripts.Upsert(ctx, t); err != nil {
		s.logger.Error("durable transcript write failed", zap.String("video_id", payload.VideoID), zap.Error(err))
	}
	if err := s.cache.Set(ctx, t); err != nil {
		s.logger.Warn("fast cache backfill failed", zap.String("video_id", payload.VideoID), zap.Error(err))
	}

	// The completed record carries the result inline so a poller gets
	// the transcript without a second trip to durable storage.
	completed := &model.Job{
		Status:   model.JobCompleted,
		VideoID:  payload.VideoID,
		UserID:   payload.UserID,
		Segments: payload.Segments,
		Language: payload.Language,
	}
	if err := s.jobs.Put(ctx, payload.JobID, completed); err != nil {
		s.logger.Error("completed job record write failed", zap.String("job_id", payload.JobID), zap.Error(err))
	}

	s.logRequest(ctx, payload.UserID, payload.VideoID, model.OutcomeSuccess, model.ProviderYouTubeAPI, s.now(), "")
	s.quota.Increment(ctx, payload.UserID)
	metrics.CallbacksTotal.WithLabelValues("completed").Inc()

	return model.JobCompleted, nil
}

// GetTranscript serves a durably stored transcript.
func (s *ExtractionServiceImpl) GetTranscript(ctx context.Context, videoID string) (*model.Transcript, error) {
	t, err := s.transcripts.GetByVideoID(ctx, videoID)
	if err != nil {
		s.logger.Error("transcript read failed", zap.String("video_id", videoID), zap.Error(err))
		return nil, errors.NewInternalError("Failed to load transcript")
	}
	if t == nil {
		return nil, errors.NewNotFoundError("transcript")
	}
	return t, nil
}

// RecentExtractions lists the user's latest extractions from the audit log.
func (s *ExtractionServiceImpl) RecentExtractions(ctx context.Context, userID string, limit int) ([]model.ExtractionHistoryItem, error) {
	items, err := s.logs.RecentByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error("history read failed", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.NewInternalError("Failed to load extraction history")
	}
	return items, nil
}

func (s *ExtractionServiceImpl) buildTranscript(videoID string, segments []model.TranscriptSegment, language string) *model.Transcript {
	texts := lo.Map(segments, func(seg model.TranscriptSegment, _ int) string {
		return seg.Text
	})
	return &model.Transcript{
		VideoID:   videoID,
		Language:  language,
		Segments:  segments,
		TextBlob:  strings.Join(texts, " "),
		UpdatedAt: s.now(),
	}
}

// logRequest appends one audit record. Logging is observability, not
// control flow: failures are swallowed after a log line.
func (s *ExtractionServiceImpl) logRequest(ctx context.Context, userID, videoID string, status model.RequestOutcome, provider model.Provider, start time.Time, errMsg string) {
	entry := &model.RequestLogEntry{
		UserID:       userID,
		VideoID:      videoID,
		Status:       status,
		Provider:     provider,
		LatencyMS:    s.now().Sub(start).Milliseconds(),
		ErrorMessage: errMsg,
	}
	if err := s.logs.Insert(ctx, entry); err != nil {
		s.logger.Error("request log write failed",
			zap.String("user_id", userID),
			zap.String("video_id", videoID),
			zap.Error(err),
		)
	}
	metrics.ExtractionsTotal.WithLabelValues(string(status), string(provider)).Inc()
}
