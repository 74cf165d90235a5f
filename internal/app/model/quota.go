package model

import "time"

// Tier is a user's subscription tier.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// Unlimited reports whether the tier has no daily extraction cap.
func (t Tier) Unlimited() bool {
	return t == TierPro
}

// QuotaCounter is the stored per-user daily usage counter. The count is
// logically zero whenever LastReset falls on a day before the current
// one; the reset is computed lazily at read time, never swept.
type QuotaCounter struct {
	UserID     string
	Tier       Tier
	DailyCount int
	LastReset  time.Time
}
