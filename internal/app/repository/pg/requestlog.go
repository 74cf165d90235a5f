package pg

import (
	"context"
	"database/sql"
	"fmt"

	"yourtranscript/internal/app/model"
)

// RequestLogRepo is the append-only Postgres audit log.
type RequestLogRepo struct {
	db *sql.DB
}

// NewRequestLogRepo creates a request log repository.
func NewRequestLogRepo(db *sql.DB) *RequestLogRepo {
	return &RequestLogRepo{db: db}
}

// Insert appends one audit record. There is no update or delete path.
func (r *RequestLogRepo) Insert(ctx context.Context, e *model.RequestLogEntry) error {
	query := `
		INSERT INTO request_logs (user_id, video_id, status, provider, cost_usd, latency_ms, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))`

	_, err := r.db.ExecContext(ctx, query,
		e.UserID, e.VideoID, string(e.Status), string(e.Provider), e.CostUSD, e.LatencyMS, e.ErrorMessage)
	if err != nil {
		return fmt.Errorf("insert request log: %w", err)
	}
	return nil
}

// RecentByUser lists the user's latest successful extractions, newest
// first, one row per video.
func (r *RequestLogRepo) RecentByUser(ctx context.Context, userID string, limit int) ([]model.ExtractionHistoryItem, error) {
	query := `
		SELECT video_id, MAX(created_at) AS created_at
		FROM request_logs
		WHERE user_id = $1 AND status IN ('success', 'cached')
		GROUP BY video_id
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent extractions: %w", err)
	}
	defer rows.Close()

	var items []model.ExtractionHistoryItem
	for rows.Next() {
		var item model.ExtractionHistoryItem
		if err := rows.Scan(&item.VideoID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return items, nil
}
