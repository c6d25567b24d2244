package cron

import (
	"context"
	"time"

	"github.com/Oumer1234/service-marketplace/models"
	"github.com/Oumer1234/service-marketplace/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingNotifier is the delivery side of a booking notification.
type BookingNotifier interface {
	Deliver(ctx context.Context, p models.BookingNotificationPayload) error
}

// NotificationWorker consumes booking notification tasks from Redis.
type NotificationWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewNotificationWorker(redisOpts asynq.RedisClientOpt, notifier BookingNotifier, logger *zap.Logger) *NotificationWorker {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingNotify, HandleBookingNotifyTask(notifier, logger))

	return &NotificationWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background, retrying start-up with backoff.
func (w *NotificationWorker) Start() {
	go func() {
		w.logger.Info("Starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("Notification worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				w.logger.Error("Notification worker giving up; notifications will stay queued")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func (w *NotificationWorker) Shutdown() {
	w.srv.Shutdown()
}

// HandleBookingNotifyTask decodes a booking notification and delivers it.
// Malformed payloads are skipped rather than retried.
func HandleBookingNotifyTask(notifier BookingNotifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseBookingNotifyTask(task)
		if err != nil {
			logger.Error("Dropping invalid notification task", zap.Error(err))
			return asynq.SkipRetry
		}

		logger.Debug("Delivering booking notification",
			zap.String("recipientId", p.RecipientID),
			zap.String("bookingId", p.BookingID),
			zap.String("type", p.Type),
		)
		if err := notifier.Deliver(ctx, p); err != nil {
			logger.Error("Failed to deliver booking notification",
				zap.String("bookingId", p.BookingID),
				zap.Error(err),
			)
			return err
		}
		return nil
	}
}
