package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"hotride-driver-api/models"
	"hotride-driver-api/stores"
)

// resetTokenTTL is how long a password reset token stays valid.
const resetTokenTTL = time.Hour

// EmailService manages the reset-token lifecycle and mail delivery. When no
// SendGrid API key is configured, mail content is logged instead of sent so
// the flow stays usable in development.
type EmailService struct {
	tokens stores.ResetTokenStore
	client *sendgrid.Client
	sender string
	log    *zap.Logger
}

// NewEmailService creates an EmailService. sendGridKey may be empty.
func NewEmailService(tokens stores.ResetTokenStore, sendGridKey, sender string, log *zap.Logger) *EmailService {
	var client *sendgrid.Client
	if sendGridKey != "" {
		client = sendgrid.NewSendClient(sendGridKey)
	}
	return &EmailService{
		tokens: tokens,
		client: client,
		sender: sender,
		log:    log,
	}
}

// GenerateResetToken creates and stores a single-use reset token for a driver.
func (s *EmailService) GenerateResetToken(ctx context.Context, driverID, email string) (string, error) {
	token, err := randomToken()
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}

	now := time.Now().UTC()
	doc := &models.ResetToken{
		DriverID:  driverID,
		Email:     email,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(resetTokenTTL),
		Used:      false,
	}
	if err := s.tokens.Insert(ctx, doc); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

// VerifyResetToken returns the token document if it is unused and unexpired.
func (s *EmailService) VerifyResetToken(ctx context.Context, token string) (*models.ResetToken, error) {
	doc, err := s.tokens.FindValid(ctx, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, ErrInvalidResetToken
		}
		return nil, err
	}
	return doc, nil
}

// ConsumeResetToken marks a token used so it can never be replayed.
func (s *EmailService) ConsumeResetToken(ctx context.Context, token string) error {
	if err := s.tokens.MarkUsed(ctx, token, time.Now().UTC()); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	return nil
}

// SendPasswordResetEmail delivers the reset link to the driver.
func (s *EmailService) SendPasswordResetEmail(email, resetToken string) error {
	resetLink := fmt.Sprintf("https://hotride.app/reset-password?token=%s", resetToken)
	subject := "Reset Your HotRide Password"
	body := fmt.Sprintf(
		"You requested to reset your password for your HotRide driver account.\n\n"+
			"Click the link below to reset your password:\n%s\n\n"+
			"This link will expire in 1 hour.\n\n"+
			"If you didn't request this, please ignore this email.",
		resetLink,
	)
	return s.send(email, subject, body)
}

// SendPasswordChangedNotification informs the driver their password changed.
func (s *EmailService) SendPasswordChangedNotification(email, driverName string) error {
	subject := "Your HotRide Password Was Changed"
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your password for your HotRide driver account was successfully changed.\n\n"+
			"If you didn't make this change, please contact support immediately.",
		driverName,
	)
	return s.send(email, subject, body)
}

func (s *EmailService) send(toEmail, subject, body string) error {
	if s.client == nil {
		// Development mode: log instead of sending.
		s.log.Info("email (console delivery)",
			zap.String("to", toEmail),
			zap.String("subject", subject),
			zap.String("body", body),
		)
		return nil
	}

	from := mail.NewEmail("HotRide", s.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send email: sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// randomToken produces a 32-byte URL-safe random string.
func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
