// Package repository defines the durable storage interfaces. Postgres
// implementations live in the pg subpackage; the interfaces keep the
// orchestration layer testable against in-memory fakes.
package repository

import (
	"context"

	"yourtranscript/internal/app/model"
)

// TranscriptDAO is the durable transcript tier, the source of truth for
// "this video has been extracted before".
type TranscriptDAO interface {
	// Upsert writes a transcript keyed by video ID. Writes are
	// idempotent; re-extraction overwrites, never duplicates.
	Upsert(ctx context.Context, t *model.Transcript) error

	// GetByVideoID returns the stored transcript, or (nil, nil) when the
	// video has never been extracted.
	GetByVideoID(ctx context.Context, videoID string) (*model.Transcript, error)
}

// RequestLogDAO is the append-only audit log of extraction attempts.
type RequestLogDAO interface {
	Insert(ctx context.Context, e *model.RequestLogEntry) error

	// RecentByUser lists a user's latest successful extractions, newest
	// first, deduplicated by video ID.
	RecentByUser(ctx context.Context, userID string, limit int) ([]model.ExtractionHistoryItem, error)
}

// QuotaDAO stores per-user daily usage counters.
type QuotaDAO interface {
	// Get returns the stored counter, or (nil, nil) for a user that has
	// never extracted anything.
	Get(ctx context.Context, userID string) (*model.QuotaCounter, error)

	// IncrementDaily bumps the user's counter for the current day as a
	// single atomic statement; the day-boundary reset happens inside the
	// same statement so concurrent increments cannot clobber each other.
	IncrementDaily(ctx context.Context, userID string) error
}
