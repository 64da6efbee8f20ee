package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResetToken is a single-use password reset credential. Documents are removed
// by the collection's TTL index one hour after expires_at.
type ResetToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DriverID  string             `bson:"driver_id" json:"driver_id"`
	Email     string             `bson:"email" json:"email"`
	Token     string             `bson:"token" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	Used      bool               `bson:"used" json:"used"`
	UsedAt    *time.Time         `bson:"used_at,omitempty" json:"used_at,omitempty"`
}
