package dto

import (
	"yourtranscript/internal/api/errors"
	"yourtranscript/internal/app/model"
)

// ExtractRequest is the body of POST /extract.
type ExtractRequest struct {
	VideoID string `json:"video_id" binding:"required"`
}

// videoIDAlphabet matches the characters YouTube uses in video IDs.
func validVideoID(id string) bool {
	if len(id) != 11 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// Validate performs domain-specific validation
func (r *ExtractRequest) Validate() error {
	if !validVideoID(r.VideoID) {
		return errors.NewBadRequestError("video_id must be a valid 11-character video identifier")
	}
	return nil
}

// TranscriptResponse is a served transcript, from any tier or a fresh
// synchronous fetch.
type TranscriptResponse struct {
	VideoID  string                    `json:"video_id"`
	Segments []model.TranscriptSegment `json:"segments"`
	Language string                    `json:"language"`
	Cached   bool                      `json:"cached"`
}

// NewTranscriptResponse converts a transcript model to its response DTO.
func NewTranscriptResponse(t *model.Transcript, cached bool) *TranscriptResponse {
	return &TranscriptResponse{
		VideoID:  t.VideoID,
		Segments: t.Segments,
		Language: t.Language,
		Cached:   cached,
	}
}

// ProcessingResponse acknowledges an accepted asynchronous dispatch.
type ProcessingResponse struct {
	Status  string `json:"status"`
	JobID   string `json:"job_id"`
	VideoID string `json:"video_id"`
}

// ExtractResult is the orchestrator's answer to an extraction request:
// exactly one of Transcript or Job is set.
type ExtractResult struct {
	Transcript *TranscriptResponse
	Job        *ProcessingResponse
}

// JobStatusResponse is the body of GET /extract/status.
type JobStatusResponse struct {
	Status   string                    `json:"status"`
	VideoID  string                    `json:"video_id"`
	Segments []model.TranscriptSegment `json:"segments,omitempty"`
	Language string                    `json:"language,omitempty"`
	Error    string                    `json:"error,omitempty"`
}

// NewJobStatusResponse converts a job model to its response DTO. The
// owning user is audit metadata and is not exposed to pollers.
func NewJobStatusResponse(j *model.Job) *JobStatusResponse {
	return &JobStatusResponse{
		Status:   string(j.Status),
		VideoID:  j.VideoID,
		Segments: j.Segments,
		Language: j.Language,
		Error:    j.Error,
	}
}

// CallbackPayload is the signed result delivery from the remote worker.
type CallbackPayload struct {
	JobID    string                    `json:"job_id"`
	VideoID  string                    `json:"video_id"`
	UserID   string                    `json:"user_id"`
	Segments []model.TranscriptSegment `json:"segments"`
	Language string                    `json:"language"`
	Error    string                    `json:"error,omitempty"`
}

// Validate performs domain-specific validation
func (p *CallbackPayload) Validate() error {
	fields := make(map[string]string)
	if p.JobID == "" {
		fields["job_id"] = "is required"
	}
	if p.VideoID == "" {
		fields["video_id"] = "is required"
	}
	if len(fields) > 0 {
		return errors.NewValidationError("Invalid callback payload", fields)
	}
	return nil
}

// TranscriptDetailResponse is a durably stored transcript with its
// full-text blob, served to the dashboard detail view.
type TranscriptDetailResponse struct {
	VideoID   string                    `json:"video_id"`
	Segments  []model.TranscriptSegment `json:"segments"`
	Language  string                    `json:"language"`
	TextBlob  string                    `json:"text_blob"`
	UpdatedAt string                    `json:"updated_at"`
}

// HistoryResponse lists a user's recent extractions.
type HistoryResponse struct {
	Items []model.ExtractionHistoryItem `json:"items"`
}
