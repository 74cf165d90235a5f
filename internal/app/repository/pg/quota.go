package pg

import (
	"context"
	"database/sql"
	"fmt"

	"yourtranscript/internal/app/model"
)

// QuotaRepo stores per-user daily extraction counters in Postgres.
type QuotaRepo struct {
	db *sql.DB
}

// NewQuotaRepo creates a quota repository.
func NewQuotaRepo(db *sql.DB) *QuotaRepo {
	return &QuotaRepo{db: db}
}

// Get returns the stored counter, or (nil, nil) when the user has none.
func (r *QuotaRepo) Get(ctx context.Context, userID string) (*model.QuotaCounter, error) {
	query := `
		SELECT user_id, tier, daily_count, last_reset
		FROM user_quotas
		WHERE user_id = $1`

	var c model.QuotaCounter
	var tier string
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&c.UserID, &tier, &c.DailyCount, &c.LastReset)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query quota: %w", err)
	}
	c.Tier = model.Tier(tier)
	return &c, nil
}

// IncrementDaily bumps the user's counter for the current UTC day. The
// day-boundary reset is folded into the same statement, making the whole
// operation a storage-level fetch-and-add: concurrent increments
// serialize on the row and never lose updates. The limit check stays a
// separate read and is therefore best-effort only.
func (r *QuotaRepo) IncrementDaily(ctx context.Context, userID string) error {
	query := `
		INSERT INTO user_quotas (user_id, daily_count, last_reset)
		VALUES ($1, 1, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			daily_count = CASE
				WHEN user_quotas.last_reset < date_trunc('day', NOW() AT TIME ZONE 'UTC') AT TIME ZONE 'UTC'
				THEN 1
				ELSE user_quotas.daily_count + 1
			END,
			last_reset = NOW()`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("increment quota: %w", err)
	}
	return nil
}
