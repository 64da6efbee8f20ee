package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hotride-driver-api/models"
	"hotride-driver-api/stores"
	"hotride-driver-api/utils"
)

// AuthService handles credential verification, token issuance and the
// password set/reset flows.
type AuthService struct {
	drivers stores.DriverStore
	email   *EmailService
	jwt     *utils.JWTManager
	log     *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(drivers stores.DriverStore, email *EmailService, jwt *utils.JWTManager, log *zap.Logger) *AuthService {
	return &AuthService{drivers: drivers, email: email, jwt: jwt, log: log}
}

// Authenticate verifies a driver's credentials. The identifier matches email
// or username. It returns the driver only on full success; a missing account,
// an OAuth-only account and a wrong password all collapse into
// ErrInvalidCredentials so callers cannot probe which one happened.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*models.Driver, error) {
	driver, err := s.drivers.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// OAuth-only accounts have no password hash.
	if driver.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(driver.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	switch driver.Status {
	case models.StatusApproved:
		return driver, nil
	case models.StatusRejected:
		return nil, ErrRejected
	default:
		return nil, ErrPendingApproval
	}
}

// IssueToken creates a signed access token for an authenticated driver.
func (s *AuthService) IssueToken(driver *models.Driver) (string, error) {
	return s.jwt.Issue(driver.ID.Hex(), driver.Email, driver.Status)
}

// SetupPassword stores a password hash for an approved driver. The login
// username defaults to the email when unset.
func (s *AuthService) SetupPassword(ctx context.Context, driverID, password string) error {
	id, err := primitive.ObjectIDFromHex(driverID)
	if err != nil {
		return ErrDriverNotFound
	}

	driver, err := s.drivers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return ErrDriverNotFound
		}
		return err
	}
	if driver.Status != models.StatusApproved {
		return ErrNotApproved
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	username := driver.Username
	if username == "" {
		username = driver.Email
	}
	return s.drivers.SetPassword(ctx, id, string(hash), username)
}

// RequestPasswordReset issues a reset token and emails it to the driver. The
// outcome is identical whether or not the account exists, to avoid account
// enumeration; only internal failures surface as errors.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailOrPhone string) error {
	driver, err := s.drivers.FindByEmailOrPhone(ctx, emailOrPhone)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			s.log.Info("password reset requested for unknown account")
			return nil
		}
		return err
	}

	token, err := s.email.GenerateResetToken(ctx, driver.ID.Hex(), driver.Email)
	if err != nil {
		return err
	}
	if err := s.email.SendPasswordResetEmail(driver.Email, token); err != nil {
		s.log.Error("failed to send password reset email",
			zap.String("driver_id", driver.ID.Hex()),
			zap.Error(err),
		)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password. A token
// works exactly once and only before its expiry.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	doc, err := s.email.VerifyResetToken(ctx, token)
	if err != nil {
		return err
	}

	id, err := primitive.ObjectIDFromHex(doc.DriverID)
	if err != nil {
		return ErrInvalidResetToken
	}
	driver, err := s.drivers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	username := driver.Username
	if username == "" {
		username = driver.Email
	}
	if err := s.drivers.SetPassword(ctx, id, string(hash), username); err != nil {
		return err
	}

	if err := s.email.ConsumeResetToken(ctx, token); err != nil {
		return err
	}

	if err := s.email.SendPasswordChangedNotification(driver.Email, driver.FullName()); err != nil {
		s.log.Error("failed to send password changed notification",
			zap.String("driver_id", driver.ID.Hex()),
			zap.Error(err),
		)
	}
	return nil
}
