package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	notificationRepo "github.com/Oumer1234/service-marketplace/database/repository/notification"
	userRepo "github.com/Oumer1234/service-marketplace/database/repository/user"
	"github.com/Oumer1234/service-marketplace/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InboxLimit is the number of notifications returned to a user.
const InboxLimit = 20

// Dispatcher stores booking notifications and pushes them to the recipient's device.
type Dispatcher struct {
	Notifications notificationRepo.NotificationRepository
	Users         userRepo.UserRepository
	Pusher        Pusher // nil disables push delivery
	Logger        *zap.Logger

	now func() time.Time
}

func NewDispatcher(
	notifications notificationRepo.NotificationRepository,
	users userRepo.UserRepository,
	pusher Pusher,
	logger *zap.Logger,
) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{Notifications: notifications, Users: users, Pusher: pusher, Logger: logger}
}

// Deliver writes the inbox entry and then attempts a push. A failed push is logged
// and does not fail delivery, so the task is not retried into duplicate inbox rows.
func (d *Dispatcher) Deliver(ctx context.Context, p models.BookingNotificationPayload) error {
	now := time.Now().UTC()
	if d.now != nil {
		now = d.now()
	}

	n := &models.Notification{
		ID:          uuid.New().String(),
		RecipientID: p.RecipientID,
		Type:        p.Type,
		Title:       p.Title,
		Message:     p.Message,
		Data:        map[string]string{"bookingId": p.BookingID, "type": p.Type},
		CreatedAt:   now,
	}
	if err := d.Notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if d.Pusher == nil {
		return nil
	}
	user, err := d.Users.GetByID(ctx, p.RecipientID)
	if err != nil {
		if !errors.Is(err, userRepo.ErrUserNotFound) {
			d.Logger.Warn("Failed to look up push recipient", zap.String("recipientId", p.RecipientID), zap.Error(err))
		}
		return nil
	}
	if user.FCMToken == "" {
		return nil
	}
	if err := d.Pusher.Push(ctx, user.FCMToken, p.Title, p.Message, n.Data); err != nil {
		d.Logger.Warn("Push notification failed",
			zap.String("recipientId", p.RecipientID),
			zap.String("bookingId", p.BookingID),
			zap.Error(err),
		)
	}
	return nil
}

// Inbox returns the newest notifications for a user.
func (d *Dispatcher) Inbox(ctx context.Context, userID string) ([]models.Notification, error) {
	return d.Notifications.ListByRecipient(ctx, userID, InboxLimit)
}
