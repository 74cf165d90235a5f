package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"yourtranscript/internal/app/model"
)

// TranscriptRepo is the Postgres-backed durable transcript tier.
type TranscriptRepo struct {
	db *sql.DB
}

// NewTranscriptRepo creates a transcript repository.
func NewTranscriptRepo(db *sql.DB) *TranscriptRepo {
	return &TranscriptRepo{db: db}
}

// Upsert writes a transcript keyed by video ID. Last writer wins, which
// is safe because extraction output is deterministic per video.
func (r *TranscriptRepo) Upsert(ctx context.Context, t *model.Transcript) error {
	segments, err := json.Marshal(t.Segments)
	if err != nil {
		return fmt.Errorf("marshal segments: %w", err)
	}

	query := `
		INSERT INTO transcripts (video_id, language, segments, text_blob, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (video_id) DO UPDATE SET
			language   = EXCLUDED.language,
			segments   = EXCLUDED.segments,
			text_blob  = EXCLUDED.text_blob,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, t.VideoID, t.Language, segments, t.TextBlob, t.UpdatedAt); err != nil {
		return fmt.Errorf("upsert transcript: %w", err)
	}
	return nil
}

// GetByVideoID returns the stored transcript, or (nil, nil) when absent.
func (r *TranscriptRepo) GetByVideoID(ctx context.Context, videoID string) (*model.Transcript, error) {
	query := `
		SELECT video_id, language, segments, text_blob, updated_at
		FROM transcripts
		WHERE video_id = $1`

	var (
		t        model.Transcript
		segments []byte
	)
	err := r.db.QueryRowContext(ctx, query, videoID).
		Scan(&t.VideoID, &t.Language, &segments, &t.TextBlob, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query transcript: %w", err)
	}

	if err := json.Unmarshal(segments, &t.Segments); err != nil {
		return nil, fmt.Errorf("unmarshal segments: %w", err)
	}
	return &t, nil
}
