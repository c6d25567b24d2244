package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Oumer1234/service-marketplace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// bookingValidator rejects documents that skip required fields or carry an unknown status.
var bookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"id",
			"providerId",
			"seekerId",
			"date",
			"time",
			"details",
			"location",
			"status",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"id":         bson.M{"bsonType": "string", "minLength": 1},
			"providerId": bson.M{"bsonType": "string", "minLength": 1},
			"seekerId":   bson.M{"bsonType": "string", "minLength": 1},
			"date":       bson.M{"bsonType": "date"},
			"time":       bson.M{"bsonType": "string", "minLength": 1},
			"details":    bson.M{"bsonType": "string", "minLength": 1},
			"location":   bson.M{"bsonType": "string", "minLength": 1},
			"budget":     bson.M{"bsonType": []string{"double", "int", "long"}, "minimum": 0},
			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					string(models.BookingPending),
					string(models.BookingAccepted),
					string(models.BookingRejected),
				},
			},
			"attachments": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},
			"createdAt": bson.M{"bsonType": "date"},
		},
	},
}

// ensureSchema creates the bookings collection with its validator, or
// refreshes the validator if the collection already exists.
func ensureSchema(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.CreateCollection().SetValidator(bookingValidator)
	err := db.CreateCollection(ctx, collectionName, opts)
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || (cmdErr.Name != "NamespaceExists" && !cmdErr.HasErrorCode(48)) {
		return fmt.Errorf("failed to create bookings collection: %w", err)
	}

	cmd := bson.D{
		{Key: "collMod", Value: collectionName},
		{Key: "validator", Value: bookingValidator},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("failed to update bookings validator: %w", err)
	}
	return nil
}

// ensureIndexes creates indexes for the fields bookings are queried by.
func (r *MongoBookingRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "seekerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
