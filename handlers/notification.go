package handlers

import (
	"context"
	"net/http"

	"github.com/Oumer1234/service-marketplace/middleware"
	"github.com/Oumer1234/service-marketplace/models"
	"github.com/Oumer1234/service-marketplace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Inbox lists a user's notifications.
type Inbox interface {
	Inbox(ctx context.Context, userID string) ([]models.Notification, error)
}

type NotificationHandler struct {
	inbox Inbox
}

func NewNotificationHandler(inbox Inbox) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

// ListNotificationsHandler handles GET /notifications.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	actor := middleware.ActorFromContext(c)
	if actor.IsZero() {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notifications, err := h.inbox.Inbox(c.Request.Context(), actor.UserID)
	if err != nil {
		getLogger(c).Error("Failed to list notifications", zap.String("userId", actor.UserID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, notifications)
}
