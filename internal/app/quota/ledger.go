// Package quota enforces the per-user daily extraction allowance. The
// reset is lazy: the effective count is a pure function of the stored
// counter and the clock, and no background sweep ever runs.
package quota

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"yourtranscript/internal/app/model"
	"yourtranscript/internal/app/repository"
)

// Decision is the outcome of a quota check.
type Decision struct {
	Allowed   bool
	Remaining int
	Unlimited bool
}

// Ledger checks and records per-user daily usage.
type Ledger struct {
	dao       repository.QuotaDAO
	freeLimit int
	logger    *zap.Logger
	now       func() time.Time
}

// NewLedger creates a quota ledger with the given free-tier daily limit.
func NewLedger(dao repository.QuotaDAO, freeLimit int, logger *zap.Logger) *Ledger {
	return &Ledger{
		dao:       dao,
		freeLimit: freeLimit,
		logger:    logger,
		now:       time.Now,
	}
}

// EffectiveCount applies the lazy calendar-day reset: a counter whose
// last reset predates the start of the current UTC day counts as zero,
// whatever number is stored.
func EffectiveCount(count int, lastReset, now time.Time) int {
	dayStart := now.UTC().Truncate(24 * time.Hour)
	if lastReset.UTC().Before(dayStart) {
		return 0
	}
	return count
}

// CheckAndReserve decides whether the user may extract right now.
// Unlimited tiers always pass. The check is a plain read-then-decide and
// makes no hard guarantee under concurrency; atomicity lives in the
// increment, not here. A ledger read failure fails open with a warning
// rather than blocking extraction.
func (l *Ledger) CheckAndReserve(ctx context.Context, userID string, tier model.Tier) Decision {
	if tier.Unlimited() {
		return Decision{Allowed: true, Unlimited: true}
	}

	counter, err := l.dao.Get(ctx, userID)
	if err != nil {
		l.logger.Warn("quota read failed, allowing request",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return Decision{Allowed: true, Remaining: l.freeLimit}
	}

	used := 0
	if counter != nil {
		used = EffectiveCount(counter.DailyCount, counter.LastReset, l.now())
	}

	if used >= l.freeLimit {
		return Decision{Allowed: false, Remaining: 0}
	}
	return Decision{Allowed: true, Remaining: l.freeLimit - used}
}

// Increment records one served extraction. It is best-effort: failures
// are logged and swallowed so accounting can never fail a request that
// already has its result.
func (l *Ledger) Increment(ctx context.Context, userID string) {
	if err := l.dao.IncrementDaily(ctx, userID); err != nil {
		l.logger.Error("failed to increment daily count",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

// ExceededMessage is the human-readable 429 body for a rejected request.
func (l *Ledger) ExceededMessage() string {
	return fmt.Sprintf("Daily extraction limit of %d reached. Your quota resets at midnight UTC.", l.freeLimit)
}
