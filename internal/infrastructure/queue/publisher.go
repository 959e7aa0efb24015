package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"bookcatalog-core/internal/events"
)

// Publisher enqueues domain events as asynq tasks for the worker.
type Publisher struct {
	client *asynq.Client
}

func NewPublisher(redisAddr string) *Publisher {
	return &Publisher{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

func (p *Publisher) Close() error {
	return p.client.Close()
}

func (p *Publisher) PublishAuthorCreated(ctx context.Context, payload events.AuthorCreatedPayload) error {
	return p.enqueue(ctx, events.TypeAuthorCreated, payload,
		asynq.Queue(events.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
}

func (p *Publisher) PublishAuthorWelcome(ctx context.Context, payload events.AuthorWelcomePayload) error {
	return p.enqueue(ctx, events.TypeAuthorWelcome, payload,
		asynq.Queue(events.QueueNotifications),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
}

func (p *Publisher) PublishBookCreated(ctx context.Context, payload events.BookCreatedPayload) error {
	return p.enqueue(ctx, events.TypeBookCreated, payload,
		asynq.Queue(events.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
}

func (p *Publisher) enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	if _, err := p.client.EnqueueContext(ctx, asynq.NewTask(taskType, data), opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}
