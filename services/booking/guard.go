package booking

import "github.com/Oumer1234/service-marketplace/models"

// Decision is the outcome of an authorization check.
type Decision int

const (
	Forbidden Decision = iota
	Allowed
)

// CanAccess allows the booking's seeker and the account owning its provider.
// provider may be nil when the profile no longer resolves.
func CanAccess(actor models.Actor, b *models.Booking, provider *models.Provider) Decision {
	if actor.IsZero() || b == nil {
		return Forbidden
	}
	if actor.UserID == b.SeekerID {
		return Allowed
	}
	return CanTransition(actor, provider)
}

// CanTransition allows only the account owning the provider. Seekers never mutate bookings.
func CanTransition(actor models.Actor, provider *models.Provider) Decision {
	if actor.IsZero() || provider == nil || provider.UserID == "" {
		return Forbidden
	}
	if actor.UserID == provider.UserID {
		return Allowed
	}
	return Forbidden
}
