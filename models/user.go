package models

import "time"

// User is a platform account. Accounts are owned by the auth service; this
// service only reads them.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Image        string    `bson:"image,omitempty" json:"image,omitempty"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Summary returns the display block used when a user is embedded in a booking.
func (u *User) Summary() *PartySummary {
	return &PartySummary{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}
