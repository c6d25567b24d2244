package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and the middleware routes need.
type HandlerBundle struct {
	// Middleware
	Auth gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler       gin.HandlerFunc
	GetBookingHandler          gin.HandlerFunc
	UpdateBookingStatusHandler gin.HandlerFunc

	// Dashboard endpoints
	OverviewHandler         gin.HandlerFunc
	ProviderBookingsHandler gin.HandlerFunc
	ProviderStatsHandler    gin.HandlerFunc
	UserBookingsHandler     gin.HandlerFunc

	// Notification endpoints
	ListNotificationsHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc

	// UploadsDir is served under /uploads when attachments are stored on local disk.
	UploadsDir string
}
