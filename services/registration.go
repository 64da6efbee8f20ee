package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"hotride-driver-api/models"
	"hotride-driver-api/stores"
)

// RegistrationInput carries validated-at-the-boundary form fields for a new
// driver registration. Dates arrive already parsed by the controller.
type RegistrationInput struct {
	Email        string
	AuthProvider string
	OAuthID      string

	FirstName  string
	MiddleName string
	Surname    string
	Birthdate  time.Time
	Birthplace string

	LicenseNumber     string
	LicenseExpiryDate time.Time

	AddressLine1   string
	AddressLine2   string
	PrimaryPhone   string
	SecondaryPhone string
}

// RegistrationResult is returned after a successful registration.
type RegistrationResult struct {
	DriverID  string    `json:"driver_id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// RegistrationService creates driver registrations.
type RegistrationService struct {
	drivers stores.DriverStore
	files   *FileService
	log     *zap.Logger
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(drivers stores.DriverStore, files *FileService, log *zap.Logger) *RegistrationService {
	return &RegistrationService{drivers: drivers, files: files, log: log}
}

// Register validates the input, rejects duplicate emails and creates a driver
// document with status pending. A photo, if supplied, is persisted after the
// document exists; photo I/O failures are logged and swallowed so a
// registration never fails because of its optional photo.
func (s *RegistrationService) Register(ctx context.Context, input RegistrationInput, photo *Upload) (*RegistrationResult, error) {
	if err := validateRegistration(&input); err != nil {
		return nil, err
	}
	if photo != nil {
		// Reject bad uploads before touching the database.
		if err := s.files.Validate(photo.Filename, photo.Size); err != nil {
			return nil, err
		}
	}

	_, err := s.drivers.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, stores.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	driver := &models.Driver{
		Email:             input.Email,
		AuthProvider:      input.AuthProvider,
		OAuthID:           input.OAuthID,
		FirstName:         input.FirstName,
		MiddleName:        input.MiddleName,
		Surname:           input.Surname,
		Birthdate:         input.Birthdate,
		Birthplace:        input.Birthplace,
		LicenseNumber:     input.LicenseNumber,
		LicenseExpiryDate: input.LicenseExpiryDate,
		AddressLine1:      input.AddressLine1,
		AddressLine2:      input.AddressLine2,
		PrimaryPhone:      input.PrimaryPhone,
		SecondaryPhone:    input.SecondaryPhone,
		Status:            models.StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	id, err := s.drivers.Insert(ctx, driver)
	if err != nil {
		return nil, err
	}
	driverID := id.Hex()

	if photo != nil {
		saved, err := s.files.SaveProfilePhoto(*photo, driverID)
		if err != nil {
			s.log.Warn("photo upload failed, registration kept",
				zap.String("driver_id", driverID),
				zap.Error(err),
			)
		} else if err := s.drivers.AttachPhoto(ctx, id, saved.Path, saved.OriginalFilename); err != nil {
			s.log.Warn("failed to attach photo to driver",
				zap.String("driver_id", driverID),
				zap.Error(err),
			)
		}
	}

	return &RegistrationResult{
		DriverID:  driverID,
		Email:     driver.Email,
		Status:    driver.Status,
		CreatedAt: driver.CreatedAt,
	}, nil
}

// validateRegistration enforces the registration rules and normalizes name
// fields in place.
func validateRegistration(input *RegistrationInput) error {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.MiddleName = strings.TrimSpace(input.MiddleName)
	input.Surname = strings.TrimSpace(input.Surname)

	if _, err := mail.ParseAddress(input.Email); err != nil {
		return &ValidationError{Field: "email", Message: "invalid email address"}
	}

	switch input.AuthProvider {
	case models.ProviderEmail:
		if input.OAuthID != "" {
			return &ValidationError{Field: "oauth_id", Message: "oauth_id should not be provided for email authentication"}
		}
	case models.ProviderGoogle, models.ProviderApple:
		if input.OAuthID == "" {
			return &ValidationError{Field: "oauth_id", Message: "oauth_id is required for " + input.AuthProvider + " authentication"}
		}
	default:
		return &ValidationError{Field: "auth_provider", Message: "auth_provider must be one of: email, google, apple"}
	}

	if err := validateName("first_name", input.FirstName, true); err != nil {
		return err
	}
	if err := validateName("surname", input.Surname, true); err != nil {
		return err
	}
	if err := validateName("middle_name", input.MiddleName, false); err != nil {
		return err
	}

	today := time.Now().UTC()
	if input.Birthdate.After(today) {
		return &ValidationError{Field: "birthdate", Message: "birthdate cannot be in the future"}
	}
	if input.LicenseExpiryDate.Before(today.Truncate(24 * time.Hour)) {
		return &ValidationError{Field: "license_expiry_date", Message: "license expiry date cannot be in the past"}
	}

	if input.Birthplace == "" {
		return &ValidationError{Field: "birthplace", Message: "birthplace is required"}
	}
	if input.LicenseNumber == "" {
		return &ValidationError{Field: "license_number", Message: "license_number is required"}
	}
	if input.AddressLine1 == "" {
		return &ValidationError{Field: "address_line_1", Message: "address_line_1 is required"}
	}
	if input.PrimaryPhone == "" {
		return &ValidationError{Field: "primary_phone", Message: "primary_phone is required"}
	}

	return nil
}

func validateName(field, value string, required bool) error {
	if value == "" {
		if required {
			return &ValidationError{Field: field, Message: field + " is required"}
		}
		return nil
	}
	if len(value) < 2 || len(value) > 100 {
		return &ValidationError{Field: field, Message: field + " must be between 2 and 100 characters"}
	}
	return nil
}
