package booking

import "github.com/Oumer1234/service-marketplace/models"

// Summarize derives the provider dashboard figures. Only accepted bookings with a
// budget count towards revenue; rating figures come from the provider profile.
func Summarize(bookings []models.Booking, provider *models.Provider) models.ProviderStats {
	stats := models.ProviderStats{TotalBookings: len(bookings)}
	for _, b := range bookings {
		if b.Status == models.BookingAccepted && b.Budget != nil {
			stats.TotalRevenue += *b.Budget
		}
	}
	if provider != nil {
		stats.AverageRating = provider.Rating
		stats.ReviewCount = provider.ReviewCount
	}
	return stats
}
