package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yourtranscript/internal/app/model"
)

func TestJobStoreRoundTrip(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewJobStore(client, 5*time.Minute)
	ctx := context.Background()

	job := &model.Job{
		Status:  model.JobProcessing,
		VideoID: "abc12345678",
		UserID:  "user-1",
	}
	require.NoError(t, store.Put(ctx, "job:abc12345678:1", job))

	got, err := store.Get(ctx, "job:abc12345678:1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.JobProcessing, got.Status)
	assert.Equal(t, "user-1", got.UserID)
}

func TestJobStoreAbsentReadsNil(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewJobStore(client, 5*time.Minute)

	got, err := store.Get(context.Background(), "job:abc12345678:1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestJobStoreExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewJobStore(client, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "job:abc12345678:1", &model.Job{Status: model.JobProcessing}))
	assert.Equal(t, 5*time.Minute, mr.TTL("job:abc12345678:1"))

	mr.FastForward(6 * time.Minute)

	got, err := store.Get(ctx, "job:abc12345678:1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestJobStoreTerminalWriteResetsExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewJobStore(client, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "job:abc12345678:1", &model.Job{Status: model.JobProcessing}))
	mr.FastForward(4 * time.Minute)

	completed := &model.Job{
		Status:   model.JobCompleted,
		VideoID:  "abc12345678",
		Segments: []model.TranscriptSegment{{Text: "hello"}},
		Language: "en",
	}
	require.NoError(t, store.Put(ctx, "job:abc12345678:1", completed))

	// The terminal write opens a fresh polling window.
	assert.Equal(t, 5*time.Minute, mr.TTL("job:abc12345678:1"))

	got, err := store.Get(ctx, "job:abc12345678:1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.JobCompleted, got.Status)
	assert.Len(t, got.Segments, 1)
}

func TestJobStoreDelete(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewJobStore(client, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "job:abc12345678:1", &model.Job{Status: model.JobCompleted}))
	require.NoError(t, store.Delete(ctx, "job:abc12345678:1"))

	got, err := store.Get(ctx, "job:abc12345678:1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, "job:abc12345678:1"))
}
