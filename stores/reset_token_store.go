package stores

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hotride-driver-api/models"
	"hotride-driver-api/utils"
)

// ResetTokenStore is the persistence contract for password reset tokens.
type ResetTokenStore interface {
	Insert(ctx context.Context, token *models.ResetToken) error
	FindValid(ctx context.Context, token string, now time.Time) (*models.ResetToken, error)
	MarkUsed(ctx context.Context, token string, usedAt time.Time) error
}

// MongoResetTokenStore implements ResetTokenStore against the
// password_reset_tokens collection.
type MongoResetTokenStore struct {
	collection *mongo.Collection
}

// NewResetTokenStore creates a store over the password_reset_tokens collection.
func NewResetTokenStore(db *mongo.Database) *MongoResetTokenStore {
	return &MongoResetTokenStore{collection: db.Collection(utils.ResetTokensCollection)}
}

// Insert stores a freshly issued reset token.
func (s *MongoResetTokenStore) Insert(ctx context.Context, token *models.ResetToken) error {
	_, err := s.collection.InsertOne(ctx, token)
	return err
}

// FindValid returns the token document only if it is unused and unexpired.
func (s *MongoResetTokenStore) FindValid(ctx context.Context, token string, now time.Time) (*models.ResetToken, error) {
	filter := bson.M{
		"token":      token,
		"used":       false,
		"expires_at": bson.M{"$gt": now},
	}
	var doc models.ResetToken
	err := s.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarkUsed consumes a token so it can never reset a password again.
func (s *MongoResetTokenStore) MarkUsed(ctx context.Context, token string, usedAt time.Time) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{"$set": bson.M{"used": true, "used_at": usedAt}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
