// Package queue is the boundary to the message-queue transport. The
// transport is a Redis Stream consumed by the extraction worker through
// a consumer group, which gives at-least-once delivery; the maxAttempts
// field tells the consumer when to stop redelivering and dead-letter the
// message instead.
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message is one asynchronous extraction request.
type Message struct {
	JobID       string
	VideoID     string
	UserID      string
	CallbackURL string
}

// Dispatcher publishes extraction requests to the queue stream.
type Dispatcher struct {
	client      *redis.Client
	stream      string
	maxAttempts int
}

// NewDispatcher creates a dispatcher for the given stream.
func NewDispatcher(client *redis.Client, stream string, maxAttempts int) *Dispatcher {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Dispatcher{
		client:      client,
		stream:      stream,
		maxAttempts: maxAttempts,
	}
}

// Publish appends one extraction message to the stream.
func (d *Dispatcher) Publish(ctx context.Context, msg Message) error {
	fields := map[string]interface{}{
		"jobId":       msg.JobID,
		"videoId":     msg.VideoID,
		"userId":      msg.UserID,
		"callbackUrl": msg.CallbackURL,
		"maxAttempts": d.maxAttempts,
		"enqueuedAt":  time.Now().UTC().Format(time.RFC3339),
	}

	if err := d.client.XAdd(ctx, &redis.XAddArgs{
		Stream: d.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("failed to publish extraction message: %w", err)
	}
	return nil
}
