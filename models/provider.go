package models

import "time"

// Service is a named offering in a provider's catalogue.
type Service struct {
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description" json:"description"`
	Price       float64 `bson:"price" json:"price"`
	Duration    string  `bson:"duration" json:"duration"`
}

// Provider is a service provider profile owned by a user account.
type Provider struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	Name         string    `bson:"name" json:"name"`
	ProfileImage string    `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	ServiceType  string    `bson:"serviceType,omitempty" json:"serviceType,omitempty"`
	Location     string    `bson:"location,omitempty" json:"location,omitempty"`
	Rating       float64   `bson:"rating" json:"rating"`
	ReviewCount  int       `bson:"reviewCount" json:"reviewCount"`
	HourlyRate   float64   `bson:"hourlyRate" json:"hourlyRate"`
	Services     []Service `bson:"services" json:"services"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
