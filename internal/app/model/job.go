package model

// JobStatus is the lifecycle state of an asynchronous extraction job.
type JobStatus string

const (
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Job tracks one asynchronous extraction. It lives in the volatile job
// store under its job ID and expires on its own; a missing record is
// indistinguishable from one that never existed.
type Job struct {
	Status   JobStatus           `json:"status"`
	VideoID  string              `json:"video_id"`
	UserID   string              `json:"user_id,omitempty"`
	Segments []TranscriptSegment `json:"segments,omitempty"`
	Language string              `json:"language,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// Terminal reports whether the job has reached a final state.
func (j *Job) Terminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}
