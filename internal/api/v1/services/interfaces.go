package services

import (
	"context"

	"yourtranscript/internal/api/v1/dto"
	"yourtranscript/internal/app/auth"
	"yourtranscript/internal/app/model"
	"yourtranscript/internal/app/queue"
	"yourtranscript/internal/app/quota"
	"yourtranscript/internal/app/worker"
)

// ExtractionService is the orchestration engine behind the API: it
// decides per request whether to serve from a cache tier, fetch
// synchronously, or dispatch asynchronously, and it ingests worker
// callbacks.
type ExtractionService interface {
	Extract(ctx context.Context, ident *auth.Identity, videoID string) (*dto.ExtractResult, error)
	JobStatus(ctx context.Context, jobID string) (*model.Job, error)
	HandleCallback(ctx context.Context, payload *dto.CallbackPayload) (model.JobStatus, error)
	GetTranscript(ctx context.Context, videoID string) (*model.Transcript, error)
	RecentExtractions(ctx context.Context, userID string, limit int) ([]model.ExtractionHistoryItem, error)
}

// TranscriptCache is the volatile first lookup tier.
type TranscriptCache interface {
	Get(ctx context.Context, videoID string) (*model.Transcript, error)
	Set(ctx context.Context, t *model.Transcript) error
}

// JobStore tracks in-flight asynchronous jobs.
type JobStore interface {
	Put(ctx context.Context, jobID string, job *model.Job) error
	Get(ctx context.Context, jobID string) (*model.Job, error)
	Delete(ctx context.Context, jobID string) error
}

// Dispatcher publishes extraction requests to the queue transport.
type Dispatcher interface {
	Publish(ctx context.Context, msg queue.Message) error
}

// WorkerClient performs synchronous extractions against the remote worker.
type WorkerClient interface {
	Extract(ctx context.Context, videoID string) (*worker.ExtractResult, error)
}

// QuotaLedger enforces and records per-user daily usage.
type QuotaLedger interface {
	CheckAndReserve(ctx context.Context, userID string, tier model.Tier) quota.Decision
	Increment(ctx context.Context, userID string)
	ExceededMessage() string
}
