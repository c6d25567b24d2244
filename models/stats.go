package models

// ProviderStats is the provider dashboard summary.
type ProviderStats struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalBookings int     `json:"totalBookings"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}
