package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Oumer1234/service-marketplace/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// seedData is everything written by one seeding run.
type seedData struct {
	Users     []models.User
	Providers []models.Provider
	Bookings  []models.Booking
}

var serviceTypes = []struct {
	Name     string
	Services []models.Service
}{
	{"Plumbing", []models.Service{
		{Name: "Leak repair", Description: "Find and fix leaking pipes and taps", Price: 60, Duration: "1h"},
		{Name: "Drain unblocking", Description: "Clear blocked sinks and drains", Price: 45, Duration: "45m"},
	}},
	{"Cleaning", []models.Service{
		{Name: "Standard clean", Description: "Kitchen, bathroom and living areas", Price: 30, Duration: "2h"},
		{Name: "Deep clean", Description: "Move-in or move-out deep clean", Price: 90, Duration: "5h"},
	}},
	{"Electrical", []models.Service{
		{Name: "Fixture install", Description: "Lights, switches and sockets", Price: 55, Duration: "1h"},
	}},
}

var locations = []string{"New York, NY", "Brooklyn, NY", "Jersey City, NJ", "Queens, NY"}

// buildSeed generates seekers, provider accounts with profiles and a spread of
// bookings between them. All accounts share password.
func buildSeed(rng *rand.Rand, now time.Time, seekers, providersPerType int, password string) (seedData, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return seedData{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var data seedData
	for i := 1; i <= seekers; i++ {
		data.Users = append(data.Users, models.User{
			ID:           uuid.New().String(),
			Name:         fmt.Sprintf("Seeker %d", i),
			Email:        fmt.Sprintf("seeker_%d@example.com", i),
			Role:         models.RoleSeeker.String(),
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	counter := 1
	for _, st := range serviceTypes {
		for i := 0; i < providersPerType; i++ {
			owner := models.User{
				ID:           uuid.New().String(),
				Name:         fmt.Sprintf("%s Pro %d", st.Name, counter),
				Email:        fmt.Sprintf("provider_%d@example.com", counter),
				Role:         models.RoleProvider.String(),
				PasswordHash: string(hash),
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			data.Users = append(data.Users, owner)
			data.Providers = append(data.Providers, models.Provider{
				ID:          uuid.New().String(),
				UserID:      owner.ID,
				Name:        owner.Name,
				ServiceType: st.Name,
				Location:    locations[rng.Intn(len(locations))],
				Rating:      float64(30+rng.Intn(21)) / 10,
				ReviewCount: rng.Intn(120),
				HourlyRate:  float64(25 + rng.Intn(60)),
				Services:    st.Services,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			counter++
		}
	}

	statuses := []models.BookingStatus{models.BookingPending, models.BookingAccepted, models.BookingRejected}
	for pi, p := range data.Providers {
		for j := 0; j < 3; j++ {
			seeker := data.Users[(pi+j)%seekers]
			created := now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour)
			b := models.Booking{
				ID:                 uuid.New().String(),
				ProviderID:         p.ID,
				SeekerID:           seeker.ID,
				Date:               created.AddDate(0, 0, 3+rng.Intn(10)).Truncate(24 * time.Hour),
				Time:               fmt.Sprintf("%02d:00", 8+rng.Intn(10)),
				Service:            p.Services[rng.Intn(len(p.Services))].Name,
				Details:            "Seeded booking request",
				Location:           p.Location,
				Status:             statuses[rng.Intn(len(statuses))],
				Attachments:        []string{},
				AdditionalServices: []string{},
				SeekerInfo:         models.SeekerInfo{Name: seeker.Name, Email: seeker.Email},
				CreatedAt:          created,
				UpdatedAt:          created,
			}
			if rng.Intn(4) > 0 {
				budget := float64(50 + rng.Intn(200))
				b.Budget = &budget
			}
			data.Bookings = append(data.Bookings, b)
		}
	}
	return data, nil
}
