package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"hotride-driver-api/services"
	"hotride-driver-api/utils"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// AuthController handles login and password management requests.
type AuthController struct {
	service *services.AuthService
	log     *zap.Logger
}

// NewAuthController creates an AuthController.
func NewAuthController(service *services.AuthService, log *zap.Logger) *AuthController {
	return &AuthController{service: service, log: log}
}

type loginRequest struct {
	EmailOrUsername string `json:"email_or_username"`
	Password        string `json:"password"`
}

type loginData struct {
	DriverID    string `json:"driver_id"`
	Email       string `json:"email"`
	Username    string `json:"username,omitempty"`
	FirstName   string `json:"first_name"`
	Surname     string `json:"surname"`
	Status      string `json:"status"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, "Invalid input")
		return
	}

	driver, err := c.service.Authenticate(r.Context(), req.EmailOrUsername, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.RespondError(w, http.StatusUnauthorized, utils.ErrUnauthorized, err.Error())
		case errors.Is(err, services.ErrPendingApproval), errors.Is(err, services.ErrRejected):
			utils.RespondError(w, http.StatusForbidden, utils.ErrForbidden, err.Error())
		default:
			c.log.Error("login failed", zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, utils.ErrInternal,
				"An error occurred during login. Please try again.")
		}
		return
	}

	token, err := c.service.IssueToken(driver)
	if err != nil {
		c.log.Error("token issuance failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, utils.ErrInternal,
			"An error occurred during login. Please try again.")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Login successful", loginData{
		DriverID:    driver.ID.Hex(),
		Email:       driver.Email,
		Username:    driver.Username,
		FirstName:   driver.FirstName,
		Surname:     driver.Surname,
		Status:      driver.Status,
		AccessToken: token,
		TokenType:   "bearer",
	})
}

type passwordSetupRequest struct {
	DriverID        string `json:"driver_id"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SetupPassword handles POST /auth/setup-password.
func (c *AuthController) SetupPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, "Invalid input")
		return
	}
	if msg, ok := checkPasswordPair(req.Password, req.ConfirmPassword); !ok {
		utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, msg)
		return
	}

	if err := c.service.SetupPassword(r.Context(), req.DriverID, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrDriverNotFound):
			utils.RespondError(w, http.StatusNotFound, utils.ErrNotFound, "Driver not found")
		case errors.Is(err, services.ErrNotApproved):
			utils.RespondError(w, http.StatusForbidden, utils.ErrForbidden, err.Error())
		default:
			c.log.Error("password setup failed", zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, utils.ErrInternal,
				"An error occurred while setting up password. Please try again.")
		}
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Password set successfully. You can now log in.", nil)
}

type forgotPasswordRequest struct {
	EmailOrPhone string `json:"email_or_phone"`
}

// ForgotPassword handles POST /auth/forgot-password. The response is the same
// generic success whether or not the account exists.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, "Invalid input")
		return
	}

	if err := c.service.RequestPasswordReset(r.Context(), req.EmailOrPhone); err != nil {
		// Internal failure only; still do not reveal anything about the account.
		c.log.Error("password reset request failed", zap.Error(err))
	}

	utils.RespondSuccess(w, http.StatusOK,
		"If an account with that email or phone exists, a password reset link has been sent.", nil)
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetPassword handles POST /auth/reset-password.
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, "Invalid input")
		return
	}
	if msg, ok := checkPasswordPair(req.NewPassword, req.ConfirmPassword); !ok {
		utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, msg)
		return
	}

	if err := c.service.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, err.Error())
			return
		}
		c.log.Error("password reset failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, utils.ErrInternal,
			"An error occurred while resetting password. Please try again.")
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Password reset successfully. You can now log in.", nil)
}

func checkPasswordPair(password, confirm string) (string, bool) {
	if password != confirm {
		return "Passwords do not match", false
	}
	if len(password) < minPasswordLength {
		return "Password must be at least 8 characters long", false
	}
	return "", true
}
