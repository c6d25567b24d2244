package booking

import (
	"fmt"

	"github.com/Oumer1234/service-marketplace/models"
)

// checkTransition rejects resolved bookings before looking at the requested status.
func checkTransition(current, requested models.BookingStatus) error {
	if current.IsTerminal() {
		return newError(CodeInvalidTransition, fmt.Sprintf("Booking status is already '%s'", current))
	}
	if err := validateStatus(requested); err != nil {
		return err
	}
	if !current.CanTransitionTo(requested) {
		return newError(CodeInvalidTransition, fmt.Sprintf("Cannot move booking from '%s' to '%s'", current, requested))
	}
	return nil
}

func resolutionNotification(b *models.Booking, provider *models.Provider) models.BookingNotificationPayload {
	name := "Your provider"
	if provider != nil && provider.Name != "" {
		name = provider.Name
	}

	p := models.BookingNotificationPayload{
		RecipientID: b.SeekerID,
		BookingID:   b.ID,
	}
	switch b.Status {
	case models.BookingAccepted:
		p.Type = models.NotificationBookingAccepted
		p.Title = "Booking accepted"
		p.Message = fmt.Sprintf("%s accepted your booking for %s.", name, b.Date.Format("2006-01-02"))
	case models.BookingRejected:
		p.Type = models.NotificationBookingRejected
		p.Title = "Booking declined"
		p.Message = fmt.Sprintf("%s declined your booking for %s.", name, b.Date.Format("2006-01-02"))
	}
	return p
}
