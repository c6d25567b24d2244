package models

import "time"

// SeekerInfo is the contact block supplied with a booking. It may describe
// someone other than the authenticated seeker (proxy booking).
type SeekerInfo struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Booking is a single service request linking a seeker and a provider.
type Booking struct {
	ID                 string        `bson:"id" json:"id"`
	ProviderID         string        `bson:"providerId" json:"providerId"`
	SeekerID           string        `bson:"seekerId" json:"seekerId"`
	Date               time.Time     `bson:"date" json:"date"`
	Time               string        `bson:"time" json:"time"`
	Service            string        `bson:"service,omitempty" json:"service,omitempty"`
	Details            string        `bson:"details" json:"details"`
	Budget             *float64      `bson:"budget,omitempty" json:"budget,omitempty"`
	Location           string        `bson:"location" json:"location"`
	LocationDetails    string        `bson:"locationDetails,omitempty" json:"locationDetails,omitempty"`
	Notes              string        `bson:"notes,omitempty" json:"notes,omitempty"`
	Status             BookingStatus `bson:"status" json:"status"`
	Attachments        []string      `bson:"attachments" json:"attachments"`
	AdditionalServices []string      `bson:"additionalServices" json:"additionalServices"`
	SeekerInfo         SeekerInfo    `bson:"seekerInfo" json:"seekerInfo"`
	CreatedAt          time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// PartySummary is the denormalized display block for either side of a booking.
type PartySummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
}

// BookingView is a booking together with its resolved provider and seeker.
type BookingView struct {
	Booking
	Provider *PartySummary `json:"provider,omitempty"`
	Seeker   *PartySummary `json:"seeker,omitempty"`
}
