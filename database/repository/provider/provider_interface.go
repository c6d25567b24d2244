package providerRepo

import (
	"context"
	"errors"

	"github.com/Oumer1234/service-marketplace/models"
)

// ErrProviderNotFound is returned when no provider matches the lookup.
var ErrProviderNotFound = errors.New("provider not found")

// ProviderRepository defines read access to provider profiles.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByUserID retrieves the provider profile owned by a user account.
	GetByUserID(ctx context.Context, userID string) (*models.Provider, error)
	// GetByIDs retrieves the providers with the given IDs, keyed by ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.Provider, error)
}
