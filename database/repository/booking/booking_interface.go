package bookingRepo

import (
	"context"
	"errors"

	"github.com/Oumer1234/service-marketplace/models"
)

var (
	// ErrBookingNotFound is returned when no booking has the requested id.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrStatusConflict is returned when a conditional status write matched no document.
	ErrStatusConflict = errors.New("booking status changed concurrently or is already resolved")
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking document.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByProvider returns every booking of a provider, newest first.
	ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	// ListBySeeker returns the newest bookings made by a seeker, capped at limit.
	ListBySeeker(ctx context.Context, seekerID string, limit int64) ([]models.Booking, error)
	// TransitionStatus atomically moves a booking from one status to another.
	// It returns ErrStatusConflict if the booking is not currently in status from.
	TransitionStatus(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error)
	// CountByStatus returns the number of bookings in each status.
	CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error)
}
