package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"yourtranscript/internal/app/model"
)

// JobStore tracks asynchronous extraction jobs in Redis. Records carry a
// short expiry: enough for a couple of client polls, after which an
// unconsumed job simply disappears and reads report not-found.
type JobStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewJobStore creates a job store with the given record TTL.
func NewJobStore(client *redis.Client, ttl time.Duration) *JobStore {
	return &JobStore{client: client, ttl: ttl}
}

// Put writes a job record under its ID, resetting the expiry window.
// Both the initial processing write and the terminal write go through
// here, so a completed job still gets a fresh polling window.
func (s *JobStore) Put(ctx context.Context, jobID string, job *model.Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("job store encode: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, jobID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("job store set: %w", err)
	}
	return nil
}

// Get returns the job record, or (nil, nil) when absent or expired.
func (s *JobStore) Get(ctx context.Context, jobID string) (*model.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, jobID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("job store get: %w", err)
	}

	var job model.Job
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("job store decode: %w", err)
	}
	return &job, nil
}

// Delete removes a job record. Deleting an absent record is not an error.
func (s *JobStore) Delete(ctx context.Context, jobID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, jobID).Err(); err != nil {
		return fmt.Errorf("job store delete: %w", err)
	}
	return nil
}
