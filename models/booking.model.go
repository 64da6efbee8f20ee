package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses this service cares about. Bookings are owned by the
// external dispatch system; we only narrow pending -> accepted.
const (
	BookingPending   = "pending"
	BookingAccepted  = "accepted"
	BookingCompleted = "completed"
)

// Booking represents a ride booking document in the bookings collection.
type Booking struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Status string             `bson:"status" json:"status"`

	// Assignment; nil until a driver claims the booking.
	AssignedDriverID *string `bson:"assigned_driver_id" json:"assigned_driver_id,omitempty"`
	DriverName       string  `bson:"driver_name,omitempty" json:"driver_name,omitempty"`

	Fare              float64 `bson:"fare" json:"fare"`
	Distance          float64 `bson:"distance" json:"distance"`
	PickupLocation    string  `bson:"pickup_location" json:"pickup_location"`
	DropoffLocation   string  `bson:"dropoff_location" json:"dropoff_location"`
	PassengerName     string  `bson:"passenger_name" json:"passenger_name"`
	PassengerPhone    string  `bson:"passenger_phone,omitempty" json:"passenger_phone,omitempty"`
	PassengerRating   float64 `bson:"passenger_rating,omitempty" json:"passenger_rating,omitempty"`
	EstimatedDuration int     `bson:"estimated_duration,omitempty" json:"estimated_duration,omitempty"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	ExpiresAt   time.Time  `bson:"expires_at" json:"expires_at"`
	AcceptedAt  *time.Time `bson:"accepted_at,omitempty" json:"accepted_at,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}
