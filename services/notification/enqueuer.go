package notification

import (
	"context"
	"fmt"

	"github.com/Oumer1234/service-marketplace/models"
	"github.com/Oumer1234/service-marketplace/services/tasks"

	"github.com/hibiken/asynq"
)

// AsynqEnqueuer publishes booking notifications to the asynq queue in Redis.
type AsynqEnqueuer struct {
	client *asynq.Client
}

func NewAsynqEnqueuer(opt asynq.RedisClientOpt) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: asynq.NewClient(opt)}
}

func (e *AsynqEnqueuer) EnqueueBookingNotification(ctx context.Context, payload models.BookingNotificationPayload) error {
	task, opts, err := tasks.NewBookingNotifyTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build notification task: %w", err)
	}
	if _, err := e.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue notification task: %w", err)
	}
	return nil
}

func (e *AsynqEnqueuer) Close() error {
	return e.client.Close()
}
