package controllers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"hotride-driver-api/services"
	"hotride-driver-api/utils"
)

const dateLayout = "2006-01-02"

// RegistrationController handles driver registration requests.
type RegistrationController struct {
	service     *services.RegistrationService
	maxFileSize int64
	log         *zap.Logger
}

// NewRegistrationController creates a RegistrationController.
func NewRegistrationController(service *services.RegistrationService, maxFileSize int64, log *zap.Logger) *RegistrationController {
	return &RegistrationController{service: service, maxFileSize: maxFileSize, log: log}
}

// Register handles POST /driver. Accepts a multipart form with the
// registration fields and an optional profile_photo file.
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(c.maxFileSize + 1<<20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, "Invalid multipart form")
		return
	}

	birthdate, err := time.Parse(dateLayout, r.FormValue("birthdate"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, "Invalid birthdate format. Use YYYY-MM-DD")
		return
	}
	licenseExpiry, err := time.Parse(dateLayout, r.FormValue("license_expiry_date"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, "Invalid license_expiry_date format. Use YYYY-MM-DD")
		return
	}

	input := services.RegistrationInput{
		Email:             r.FormValue("email"),
		AuthProvider:      r.FormValue("auth_provider"),
		OAuthID:           r.FormValue("oauth_id"),
		FirstName:         r.FormValue("first_name"),
		MiddleName:        r.FormValue("middle_name"),
		Surname:           r.FormValue("surname"),
		Birthdate:         birthdate,
		Birthplace:        r.FormValue("birthplace"),
		LicenseNumber:     r.FormValue("license_number"),
		LicenseExpiryDate: licenseExpiry,
		AddressLine1:      r.FormValue("address_line_1"),
		AddressLine2:      r.FormValue("address_line_2"),
		PrimaryPhone:      r.FormValue("primary_phone"),
		SecondaryPhone:    r.FormValue("secondary_phone"),
	}

	var photo *services.Upload
	file, header, err := r.FormFile("profile_photo")
	switch {
	case err == nil:
		defer file.Close()
		photo = &services.Upload{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  file,
		}
	case errors.Is(err, http.ErrMissingFile):
		// Photo is optional.
	default:
		utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, "Invalid profile_photo upload")
		return
	}

	result, err := c.service.Register(r.Context(), input, photo)
	if err != nil {
		if verr, ok := services.AsValidationError(err); ok {
			utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, verr.Message)
			return
		}
		if errors.Is(err, services.ErrDuplicateEmail) {
			utils.RespondError(w, http.StatusConflict, utils.ErrConflict, err.Error())
			return
		}
		c.log.Error("driver registration failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, utils.ErrInternal,
			"An error occurred while processing your registration. Please try again.")
		return
	}

	utils.RespondSuccess(w, http.StatusCreated, "Registration submitted successfully", result)
}
