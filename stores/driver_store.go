// Package stores contains the MongoDB persistence layer. Each store wraps one
// collection; services depend on the interfaces so tests can substitute fakes.
package stores

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hotride-driver-api/models"
	"hotride-driver-api/utils"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// DriverStore is the persistence contract for driver documents.
type DriverStore interface {
	Insert(ctx context.Context, driver *models.Driver) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	FindByEmail(ctx context.Context, email string) (*models.Driver, error)
	FindByIdentifier(ctx context.Context, emailOrUsername string) (*models.Driver, error)
	FindByEmailOrPhone(ctx context.Context, emailOrPhone string) (*models.Driver, error)
	SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash, username string) error
	SetOnline(ctx context.Context, id primitive.ObjectID, online bool) error
	SetBusy(ctx context.Context, id primitive.ObjectID, bookingID string) error
	AttachPhoto(ctx context.Context, id primitive.ObjectID, photoURL, originalFilename string) error
}

// MongoDriverStore implements DriverStore against the drivers collection.
type MongoDriverStore struct {
	collection *mongo.Collection
}

// NewDriverStore creates a store over the drivers collection.
func NewDriverStore(db *mongo.Database) *MongoDriverStore {
	return &MongoDriverStore{collection: db.Collection(utils.DriversCollection)}
}

// Insert stores a new driver document and returns its generated id.
func (s *MongoDriverStore) Insert(ctx context.Context, driver *models.Driver) (primitive.ObjectID, error) {
	res, err := s.collection.InsertOne(ctx, driver)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("unexpected inserted id type")
	}
	return id, nil
}

// FindByID looks up a driver by its object id.
func (s *MongoDriverStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail looks up a driver by email.
func (s *MongoDriverStore) FindByEmail(ctx context.Context, email string) (*models.Driver, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// FindByIdentifier looks up a driver by email or login username.
func (s *MongoDriverStore) FindByIdentifier(ctx context.Context, emailOrUsername string) (*models.Driver, error) {
	return s.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": emailOrUsername},
		bson.M{"username": emailOrUsername},
	}})
}

// FindByEmailOrPhone looks up a driver by email or primary phone, used by the
// forgot-password flow.
func (s *MongoDriverStore) FindByEmailOrPhone(ctx context.Context, emailOrPhone string) (*models.Driver, error) {
	return s.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": emailOrPhone},
		bson.M{"primary_phone": emailOrPhone},
	}})
}

// SetPassword stores the password hash and login username for a driver.
func (s *MongoDriverStore) SetPassword(ctx context.Context, id primitive.ObjectID, passwordHash, username string) error {
	return s.updateOne(ctx, id, bson.M{
		"password_hash": passwordHash,
		"username":      username,
		"updated_at":    time.Now().UTC(),
	})
}

// SetOnline toggles the driver's online flag.
func (s *MongoDriverStore) SetOnline(ctx context.Context, id primitive.ObjectID, online bool) error {
	return s.updateOne(ctx, id, bson.M{
		"is_online":          online,
		"last_online_update": time.Now().UTC(),
	})
}

// SetBusy marks the driver busy with the given booking.
func (s *MongoDriverStore) SetBusy(ctx context.Context, id primitive.ObjectID, bookingID string) error {
	return s.updateOne(ctx, id, bson.M{
		"current_booking_id": bookingID,
		"is_busy":            true,
	})
}

// AttachPhoto records the stored photo path and original filename.
func (s *MongoDriverStore) AttachPhoto(ctx context.Context, id primitive.ObjectID, photoURL, originalFilename string) error {
	return s.updateOne(ctx, id, bson.M{
		"profile_photo_url":      photoURL,
		"profile_photo_filename": originalFilename,
		"updated_at":             time.Now().UTC(),
	})
}

func (s *MongoDriverStore) findOne(ctx context.Context, filter bson.M) (*models.Driver, error) {
	var driver models.Driver
	err := s.collection.FindOne(ctx, filter).Decode(&driver)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (s *MongoDriverStore) updateOne(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
