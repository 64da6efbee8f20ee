package stores

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotride-driver-api/models"
	"hotride-driver-api/utils"
)

// DayStats aggregates a driver's completed trips for one day.
type DayStats struct {
	TripsCompleted int64   `bson:"trips_completed"`
	TotalFare      float64 `bson:"total_fare"`
}

// BookingStore is the persistence contract for booking documents. The
// collection is owned by the external dispatch system; this service only
// reads bookings and narrows pending -> accepted.
type BookingStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	ListPending(ctx context.Context, now time.Time, limit int64) ([]models.Booking, error)
	Claim(ctx context.Context, id primitive.ObjectID, driverID, driverName string, now time.Time) (bool, error)
	TodayStats(ctx context.Context, driverID string, dayStart, dayEnd time.Time) (DayStats, error)
}

// MongoBookingStore implements BookingStore against the bookings collection.
type MongoBookingStore struct {
	collection *mongo.Collection
}

// NewBookingStore creates a store over the bookings collection.
func NewBookingStore(db *mongo.Database) *MongoBookingStore {
	return &MongoBookingStore{collection: db.Collection(utils.BookingsCollection)}
}

// FindByID looks up a booking by its object id.
func (s *MongoBookingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListPending returns unassigned, unexpired pending bookings, oldest first.
func (s *MongoBookingStore) ListPending(ctx context.Context, now time.Time, limit int64) ([]models.Booking, error) {
	filter := bson.M{
		"status":             models.BookingPending,
		"assigned_driver_id": nil,
		"expires_at":         bson.M{"$gt": now},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Claim assigns the booking to a driver with a single conditional update. The
// filter re-checks pending/unassigned/unexpired, so of two concurrent claims
// at most one update matches; the loser gets claimed=false. Per-document
// atomicity of the update is the only concurrency control in play.
func (s *MongoBookingStore) Claim(ctx context.Context, id primitive.ObjectID, driverID, driverName string, now time.Time) (bool, error) {
	filter := bson.M{
		"_id":                id,
		"status":             models.BookingPending,
		"assigned_driver_id": nil,
		"expires_at":         bson.M{"$gt": now},
	}
	update := bson.M{"$set": bson.M{
		"assigned_driver_id": driverID,
		"driver_name":        driverName,
		"status":             models.BookingAccepted,
		"accepted_at":        now,
	}}

	res, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// TodayStats sums fares and counts completed trips for a driver within the
// [dayStart, dayEnd) window.
func (s *MongoBookingStore) TodayStats(ctx context.Context, driverID string, dayStart, dayEnd time.Time) (DayStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"assigned_driver_id": driverID,
			"status":             models.BookingCompleted,
			"completed_at":       bson.M{"$gte": dayStart, "$lt": dayEnd},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":             nil,
			"trips_completed": bson.M{"$sum": 1},
			"total_fare":      bson.M{"$sum": "$fare"},
		}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return DayStats{}, err
	}
	defer cursor.Close(ctx)

	var results []DayStats
	if err := cursor.All(ctx, &results); err != nil {
		return DayStats{}, err
	}
	if len(results) == 0 {
		return DayStats{}, nil
	}
	return results[0], nil
}
