package model

import "time"

// RequestOutcome is the recorded outcome of an extraction attempt.
type RequestOutcome string

const (
	OutcomeSuccess RequestOutcome = "success"
	OutcomeCached  RequestOutcome = "cached"
	OutcomeError   RequestOutcome = "error"
)

// Provider tags which layer served (or rejected) the request.
type Provider string

const (
	ProviderCache      Provider = "cache"
	ProviderDBCache    Provider = "db_cache"
	ProviderYouTubeAPI Provider = "youtube_api"
	ProviderRateLimit  Provider = "rate_limit"
	ProviderError      Provider = "error"
)

// RequestLogEntry is one immutable audit record. Entries are only ever
// inserted, never updated or deleted.
type RequestLogEntry struct {
	UserID       string
	VideoID      string
	Status       RequestOutcome
	Provider     Provider
	CostUSD      float64
	LatencyMS    int64
	ErrorMessage string
	CreatedAt    time.Time
}
