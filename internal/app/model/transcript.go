package model

import "time"

// TranscriptSegment is a single timed segment of a video transcript.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is the durable record of an extracted video transcript.
// There is at most one per video ID; writes are idempotent upserts.
type Transcript struct {
	VideoID   string              `json:"video_id"`
	Language  string              `json:"language"`
	Segments  []TranscriptSegment `json:"segments"`
	TextBlob  string              `json:"text_blob,omitempty"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ExtractionHistoryItem is one entry in a user's extraction history.
type ExtractionHistoryItem struct {
	VideoID   string    `json:"video_id"`
	CreatedAt time.Time `json:"created_at"`
}
