package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"yourtranscript/internal/app/model"
)

// cachedTranscript is the wire form stored under transcript keys. Only
// the payload a reader needs is cached; the durable row keeps the rest.
type cachedTranscript struct {
	Segments []model.TranscriptSegment `json:"segments"`
	Language string                    `json:"language"`
}

// TranscriptCache is the fast, volatile transcript tier. Keys are
// per-video, never per-user: transcript content is not user-specific.
type TranscriptCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTranscriptCache creates a transcript cache with the given per-key TTL.
func NewTranscriptCache(client *redis.Client, ttl time.Duration) *TranscriptCache {
	return &TranscriptCache{client: client, ttl: ttl}
}

func transcriptKey(videoID string) string {
	return "transcript:" + videoID
}

// Get returns the cached transcript for a video, or (nil, nil) on a miss.
func (c *TranscriptCache) Get(ctx context.Context, videoID string) (*model.Transcript, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, transcriptKey(videoID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("transcript cache get: %w", err)
	}

	var cached cachedTranscript
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("transcript cache decode: %w", err)
	}

	return &model.Transcript{
		VideoID:  videoID,
		Language: cached.Language,
		Segments: cached.Segments,
	}, nil
}

// Set writes a transcript into the cache with the configured expiry.
func (c *TranscriptCache) Set(ctx context.Context, t *model.Transcript) error {
	raw, err := json.Marshal(cachedTranscript{
		Segments: t.Segments,
		Language: t.Language,
	})
	if err != nil {
		return fmt.Errorf("transcript cache encode: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, transcriptKey(t.VideoID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("transcript cache set: %w", err)
	}
	return nil
}
