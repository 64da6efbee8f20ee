// Package services contains the business logic between the HTTP controllers
// and the MongoDB stores.
package services

import "errors"

// Domain errors raised by the services and mapped to HTTP status codes at the
// controller boundary.
var (
	ErrDuplicateEmail = errors.New("a registration with this email address has already been submitted")

	ErrInvalidCredentials = errors.New("invalid email/username or password")
	ErrPendingApproval    = errors.New("your registration is pending approval, please wait for admin review")
	ErrRejected           = errors.New("your registration has been rejected, please contact support")
	ErrNotApproved        = errors.New("only approved drivers can set up login credentials")
	ErrDriverNotFound     = errors.New("driver not found")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingTaken    = errors.New("booking is no longer available")
	ErrBookingExpired  = errors.New("booking request has expired")
)

// ValidationError marks input that fails registration validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
