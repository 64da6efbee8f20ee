package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Driver statuses. Transitions (pending -> approved/rejected) are performed by
// the external review workflow; this service never changes status itself and
// the store enforces no transition guard.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Auth providers accepted at registration.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
	ProviderApple  = "apple"
)

// Driver represents a driver registration document in the drivers collection.
type Driver struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`

	// Authentication
	Email        string `bson:"email" json:"email"`
	Username     string `bson:"username,omitempty" json:"username,omitempty"`
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`
	AuthProvider string `bson:"auth_provider" json:"auth_provider"`
	OAuthID      string `bson:"oauth_id,omitempty" json:"-"`

	// Personal information
	FirstName  string    `bson:"first_name" json:"first_name"`
	MiddleName string    `bson:"middle_name,omitempty" json:"middle_name,omitempty"`
	Surname    string    `bson:"surname" json:"surname"`
	Birthdate  time.Time `bson:"birthdate" json:"birthdate"`
	Birthplace string    `bson:"birthplace" json:"birthplace"`

	// License information
	LicenseNumber     string    `bson:"license_number" json:"license_number"`
	LicenseExpiryDate time.Time `bson:"license_expiry_date" json:"license_expiry_date"`

	// Contact information
	AddressLine1   string `bson:"address_line_1" json:"address_line_1"`
	AddressLine2   string `bson:"address_line_2,omitempty" json:"address_line_2,omitempty"`
	PrimaryPhone   string `bson:"primary_phone" json:"primary_phone"`
	SecondaryPhone string `bson:"secondary_phone,omitempty" json:"secondary_phone,omitempty"`

	// Profile photo
	ProfilePhotoURL      string `bson:"profile_photo_url,omitempty" json:"profile_photo_url,omitempty"`
	ProfilePhotoFilename string `bson:"profile_photo_filename,omitempty" json:"profile_photo_filename,omitempty"`

	// Status & metadata
	Status          string              `bson:"status" json:"status"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
	ReviewedAt      *time.Time          `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	ReviewedBy      *primitive.ObjectID `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	RejectionReason string              `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`

	// Dispatch state
	IsOnline         bool       `bson:"is_online" json:"is_online"`
	IsBusy           bool       `bson:"is_busy" json:"is_busy"`
	CurrentBookingID string     `bson:"current_booking_id,omitempty" json:"current_booking_id,omitempty"`
	LastOnlineUpdate *time.Time `bson:"last_online_update,omitempty" json:"-"`
}

// FullName returns the driver's display name used on assigned bookings.
func (d *Driver) FullName() string {
	return d.FirstName + " " + d.Surname
}
