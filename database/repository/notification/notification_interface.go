package notificationRepo

import (
	"context"

	"github.com/Oumer1234/service-marketplace/models"
)

// NotificationRepository stores user inbox entries.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit int64) ([]models.Notification, error)
}
