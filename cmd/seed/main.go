package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/Oumer1234/service-marketplace/config"
	"github.com/Oumer1234/service-marketplace/database"
	bookingRepo "github.com/Oumer1234/service-marketplace/database/repository/booking"
	"github.com/Oumer1234/service-marketplace/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func main() {
	seekers := flag.Int("seekers", 5, "number of seeker accounts")
	perType := flag.Int("providers", 3, "provider accounts per service type")
	password := flag.String("password", "password123", "password for every seeded account")
	flag.Parse()

	if *seekers < 1 {
		log.Fatal("seed: -seekers must be at least 1")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	logger := utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	if cfg.IsProduction() {
		logger.Fatal("Refusing to seed a production database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer database.Disconnect(client)
	db := client.Database(cfg.DatabaseName)

	// Creates the bookings collection with its validator and indexes.
	if _, err := bookingRepo.NewMongoBookingRepo(ctx, db); err != nil {
		logger.Fatal("Failed to prepare bookings collection", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	data, err := buildSeed(rng, time.Now().UTC(), *seekers, *perType, *password)
	if err != nil {
		logger.Fatal("Failed to build seed data", zap.Error(err))
	}

	for _, name := range []string{"users", "providers", "bookings", "notifications"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			logger.Fatal("Failed to clear collection", zap.String("collection", name), zap.Error(err))
		}
	}

	insert := func(name string, docs []interface{}) {
		if len(docs) == 0 {
			return
		}
		if _, err := db.Collection(name).InsertMany(ctx, docs); err != nil {
			logger.Fatal("Failed to insert documents", zap.String("collection", name), zap.Error(err))
		}
		logger.Info("Seeded collection", zap.String("collection", name), zap.Int("count", len(docs)))
	}

	users := make([]interface{}, 0, len(data.Users))
	for _, u := range data.Users {
		users = append(users, u)
	}
	providers := make([]interface{}, 0, len(data.Providers))
	for _, p := range data.Providers {
		providers = append(providers, p)
	}
	bookings := make([]interface{}, 0, len(data.Bookings))
	for _, b := range data.Bookings {
		bookings = append(bookings, b)
	}
	insert("users", users)
	insert("providers", providers)
	insert("bookings", bookings)

	// Print a session token per account for local testing against the API.
	for _, u := range data.Users {
		token, err := utils.GenerateToken([]byte(cfg.SessionSecret), utils.SessionClaims{
			UserID: u.ID,
			Email:  u.Email,
			Role:   u.Role,
		}, 24*time.Hour)
		if err != nil {
			logger.Fatal("Failed to sign token", zap.Error(err))
		}
		logger.Info("Seeded account", zap.String("email", u.Email), zap.String("role", u.Role), zap.String("token", token))
	}
}
