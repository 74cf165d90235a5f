package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yourtranscript/internal/app/model"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestTranscriptCacheRoundTrip(t *testing.T) {
	_, client := newTestRedis(t)
	cache := NewTranscriptCache(client, 7*24*time.Hour)
	ctx := context.Background()

	stored := &model.Transcript{
		VideoID:  "abc12345678",
		Language: "en",
		Segments: []model.TranscriptSegment{
			{Text: "hello", Start: 0, Duration: 1.5},
			{Text: "world", Start: 1.5, Duration: 2},
		},
		TextBlob:  "hello world",
		UpdatedAt: time.Now(),
	}
	require.NoError(t, cache.Set(ctx, stored))

	got, err := cache.Get(ctx, "abc12345678")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc12345678", got.VideoID)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, stored.Segments, got.Segments)

	// Only the serving payload is cached; the blob stays in the durable row.
	assert.Empty(t, got.TextBlob)
}

func TestTranscriptCacheMiss(t *testing.T) {
	_, client := newTestRedis(t)
	cache := NewTranscriptCache(client, time.Hour)

	got, err := cache.Get(context.Background(), "unknownvid0")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTranscriptCacheKeyAndTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewTranscriptCache(client, 7*24*time.Hour)

	require.NoError(t, cache.Set(context.Background(), &model.Transcript{VideoID: "abc12345678"}))

	require.True(t, mr.Exists("transcript:abc12345678"))
	assert.Equal(t, 7*24*time.Hour, mr.TTL("transcript:abc12345678"))
}

func TestTranscriptCacheExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewTranscriptCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &model.Transcript{VideoID: "abc12345678", Language: "en"}))
	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, "abc12345678")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTranscriptCacheCorruptEntry(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewTranscriptCache(client, time.Hour)

	mr.Set("transcript:abc12345678", "not json")

	_, err := cache.Get(context.Background(), "abc12345678")
	assert.Error(t, err)
}
