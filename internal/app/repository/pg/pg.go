package pg

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, connectionString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the tables this service owns if they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS transcripts (
			video_id   TEXT PRIMARY KEY,
			language   TEXT NOT NULL DEFAULT '',
			segments   JSONB NOT NULL,
			text_blob  TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS request_logs (
			id            BIGSERIAL PRIMARY KEY,
			user_id       TEXT NOT NULL,
			video_id      TEXT NOT NULL,
			status        TEXT NOT NULL,
			provider      TEXT NOT NULL,
			cost_usd      DOUBLE PRECISION NOT NULL DEFAULT 0,
			latency_ms    BIGINT NOT NULL DEFAULT 0,
			error_message TEXT,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_request_logs_user_created
			ON request_logs (user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS user_quotas (
			user_id     TEXT PRIMARY KEY,
			tier        TEXT NOT NULL DEFAULT 'free',
			daily_count INTEGER NOT NULL DEFAULT 0,
			last_reset  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
