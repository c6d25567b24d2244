package booking

import (
	"context"
	"time"

	bookingRepo "github.com/Oumer1234/service-marketplace/database/repository/booking"
	providerRepo "github.com/Oumer1234/service-marketplace/database/repository/provider"
	userRepo "github.com/Oumer1234/service-marketplace/database/repository/user"
	"github.com/Oumer1234/service-marketplace/models"
	"github.com/Oumer1234/service-marketplace/services/notification"
	"github.com/Oumer1234/service-marketplace/services/storage"

	"go.uber.org/zap"
)

// SeekerBookingsLimit caps the seeker's booking list.
const SeekerBookingsLimit = 10

// BookingService is the booking lifecycle consumed by the HTTP handlers.
type BookingService interface {
	CreateBooking(ctx context.Context, actor models.Actor, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, actor models.Actor, id string) (*models.BookingView, error)
	ListProviderBookings(ctx context.Context, actor models.Actor) ([]models.BookingView, error)
	ListSeekerBookings(ctx context.Context, actor models.Actor) ([]models.BookingView, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id string, status models.BookingStatus) (*models.BookingView, error)
	ComputeStats(ctx context.Context, actor models.Actor) (*models.ProviderStats, error)
	Overview(ctx context.Context, actor models.Actor) (*Overview, error)
}

// Overview is the role dependent dashboard payload.
type Overview struct {
	Role         string                         `json:"role"`
	Bookings     []models.BookingView           `json:"bookings,omitempty"`
	Stats        *models.ProviderStats          `json:"stats,omitempty"`
	StatusCounts map[models.BookingStatus]int64 `json:"statusCounts,omitempty"`
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Providers providerRepo.ProviderRepository
	Users     userRepo.UserRepository
	Store     storage.BlobStore
	Notifier  notification.Enqueuer
	Logger    *zap.Logger

	// now and newID are replaced in tests.
	now   func() time.Time
	newID func() string
}
