package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Oumer1234/service-marketplace/models"

	"github.com/hibiken/asynq"
)

const TypeBookingNotify = "booking:notify"

func NewBookingNotifyTask(payload models.BookingNotificationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingNotify, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// ParseBookingNotifyTask decodes and checks a booking notification task body.
func ParseBookingNotifyTask(task *asynq.Task) (models.BookingNotificationPayload, error) {
	var p models.BookingNotificationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid booking notification payload: %w", err)
	}
	if p.RecipientID == "" || p.BookingID == "" {
		return p, fmt.Errorf("booking notification payload missing recipient or booking id")
	}
	return p, nil
}
