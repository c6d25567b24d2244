package userRepo

import (
	"context"
	"errors"

	"github.com/Oumer1234/service-marketplace/models"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines read access to user accounts.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDs retrieves the users with the given IDs, keyed by ID. Missing IDs are absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}
