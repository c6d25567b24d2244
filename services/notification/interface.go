package notification

import (
	"context"

	"github.com/Oumer1234/service-marketplace/models"
)

// Enqueuer hands booking notifications to the background worker.
type Enqueuer interface {
	EnqueueBookingNotification(ctx context.Context, payload models.BookingNotificationPayload) error
}

// Pusher delivers a push message to a single device token.
type Pusher interface {
	Push(ctx context.Context, token, title, body string, data map[string]string) error
}

// NoopEnqueuer drops notifications. Used when the queue is disabled.
type NoopEnqueuer struct{}

func (NoopEnqueuer) EnqueueBookingNotification(context.Context, models.BookingNotificationPayload) error {
	return nil
}
