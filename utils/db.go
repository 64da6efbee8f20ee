// utils/db.go
package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	DriversCollection     = "drivers"
	BookingsCollection    = "bookings"
	ResetTokensCollection = "password_reset_tokens"
)

// ConnectDB opens a MongoDB client and verifies the connection with a ping.
// The returned client is owned by the caller and must be disconnected on
// shutdown.
func ConnectDB(ctx context.Context, mongoURL string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

// EnsureIndexes creates the indexes the API relies on. Safe to call on every
// startup; MongoDB treats existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	drivers := []mongo.IndexModel{
		// Unique email index prevents duplicate registrations.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "license_number", Value: 1}}},
	}
	if _, err := db.Collection(DriversCollection).Indexes().CreateMany(ctx, drivers); err != nil {
		return err
	}

	// Reset tokens are purged one hour after their expiry time.
	ttl := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(3600),
	}
	if _, err := db.Collection(ResetTokensCollection).Indexes().CreateOne(ctx, ttl); err != nil {
		return err
	}

	return nil
}
