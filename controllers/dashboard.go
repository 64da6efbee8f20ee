package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"hotride-driver-api/middleware"
	"hotride-driver-api/models"
	"hotride-driver-api/services"
	"hotride-driver-api/utils"
)

// DashboardController serves the authenticated driver dashboard.
type DashboardController struct {
	service *services.DashboardService
	log     *zap.Logger
}

// NewDashboardController creates a DashboardController.
func NewDashboardController(service *services.DashboardService, log *zap.Logger) *DashboardController {
	return &DashboardController{service: service, log: log}
}

// currentDriver resolves the authenticated driver from the token claims set
// by the auth middleware. A missing claim set or a vanished driver is 401.
func (c *DashboardController) currentDriver(w http.ResponseWriter, r *http.Request) *models.Driver {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, utils.ErrUnauthorized, "Missing or invalid authorization header")
		return nil
	}

	driver, err := c.service.CurrentDriver(r.Context(), claims.DriverID)
	if err != nil {
		if errors.Is(err, services.ErrDriverNotFound) {
			utils.RespondError(w, http.StatusUnauthorized, utils.ErrUnauthorized, "Driver not found")
			return nil
		}
		c.log.Error("driver lookup failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, utils.ErrInternal, "Failed to resolve driver")
		return nil
	}
	return driver
}

// Stats handles GET /dashboard/stats.
func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	driver := c.currentDriver(w, r)
	if driver == nil {
		return
	}

	stats, err := c.service.Stats(r.Context(), driver)
	if err != nil {
		c.log.Error("dashboard stats failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, utils.ErrInternal,
			"Failed to retrieve dashboard statistics")
		return
	}

	utils.RespondJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*services.DashboardStats
	}{true, stats})
}

type onlineStatusRequest struct {
	IsOnline bool `json:"is_online"`
}

// OnlineStatus handles POST /dashboard/online-status.
func (c *DashboardController) OnlineStatus(w http.ResponseWriter, r *http.Request) {
	driver := c.currentDriver(w, r)
	if driver == nil {
		return
	}

	var req onlineStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, utils.ErrValidation, "Invalid input")
		return
	}

	if err := c.service.SetOnline(r.Context(), driver, req.IsOnline); err != nil {
		c.log.Error("online status update failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, utils.ErrInternal,
			"Failed to update online status")
		return
	}

	state := "offline"
	if req.IsOnline {
		state = "online"
	}
	utils.RespondJSON(w, http.StatusOK, struct {
		Success  bool   `json:"success"`
		Message  string `json:"message"`
		IsOnline bool   `json:"is_online"`
	}{true, "Status updated to " + state, req.IsOnline})
}

// BookingRequests handles GET /dashboard/booking-requests. An offline driver
// receives an empty list, never an error.
func (c *DashboardController) BookingRequests(w http.ResponseWriter, r *http.Request) {
	driver := c.currentDriver(w, r)
	if driver == nil {
		return
	}

	bookings, err := c.service.BookingRequests(r.Context(), driver)
	if err != nil {
		c.log.Error("booking requests failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, utils.ErrInternal,
			"Failed to retrieve booking requests")
		return
	}

	utils.RespondJSON(w, http.StatusOK, struct {
		Success  bool             `json:"success"`
		Bookings []models.Booking `json:"bookings"`
		Count    int              `json:"count"`
	}{true, bookings, len(bookings)})
}

// AcceptBooking handles POST /dashboard/bookings/{booking_id}/accept.
func (c *DashboardController) AcceptBooking(w http.ResponseWriter, r *http.Request) {
	driver := c.currentDriver(w, r)
	if driver == nil {
		return
	}

	bookingID := mux.Vars(r)["booking_id"]
	accepted, err := c.service.AcceptBooking(r.Context(), driver, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.RespondError(w, http.StatusNotFound, utils.ErrNotFound, "Booking not found")
		case errors.Is(err, services.ErrBookingTaken):
			utils.RespondError(w, http.StatusConflict, utils.ErrConflict, err.Error())
		case errors.Is(err, services.ErrBookingExpired):
			utils.RespondError(w, http.StatusGone, utils.ErrGone, err.Error())
		default:
			c.log.Error("accept booking failed", zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, utils.ErrInternal,
				"Failed to accept booking")
		}
		return
	}

	utils.RespondSuccess(w, http.StatusOK, "Booking accepted successfully", accepted)
}
