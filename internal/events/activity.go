package events

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ActionCreated   = "created"
	ActionCompleted = "completed"
	ActionReopened  = "reopened"
	ActionDeleted   = "deleted"
)

// TodoEvent records one lifecycle change of a todo. Events feed a Redis
// Stream for external consumers; they are advisory and never part of the
// request's success or failure.
type TodoEvent struct {
	Action  string
	TodoID  string
	Creator string
	At      time.Time
}

type Producer struct {
	client     *redis.Client
	streamName string
}

func NewProducer(client *redis.Client, streamName string) *Producer {
	return &Producer{
		client:     client,
		streamName: streamName,
	}
}

// Publish appends the event to the stream. A nil producer silently drops
// events, which is how deployments without Redis run.
func (p *Producer) Publish(ctx context.Context, event *TodoEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	fields := map[string]interface{}{
		"action":  event.Action,
		"todo_id": event.TodoID,
		"creator": event.Creator,
		"at":      event.At.UnixMilli(),
	}

	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.streamName,
		Values: fields,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish todo event: %w", err)
	}
	return nil
}
