package models

import "time"

// Notification types emitted by the booking lifecycle.
const (
	NotificationBookingRequested = "booking_requested"
	NotificationBookingAccepted  = "booking_accepted"
	NotificationBookingRejected  = "booking_rejected"
)

// Notification is an inbox entry for a user.
type Notification struct {
	ID          string            `bson:"id" json:"id"`
	RecipientID string            `bson:"recipientId" json:"recipientId"`
	Type        string            `bson:"type" json:"type"`
	Title       string            `bson:"title" json:"title"`
	Message     string            `bson:"message" json:"message"`
	Data        map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read        bool              `bson:"read" json:"read"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
}

// BookingNotificationPayload is the queued task body for a booking notification.
type BookingNotificationPayload struct {
	RecipientID string `json:"recipientId"`
	Type        string `json:"type"`
	BookingID   string `json:"bookingId"`
	Title       string `json:"title"`
	Message     string `json:"message"`
}
