// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"hotride-driver-api/controllers"
	"hotride-driver-api/middleware"
	"hotride-driver-api/utils"
)

// RegisterRoutes sets up all the routes for the application.
func RegisterRoutes(
	router *mux.Router,
	apiPrefix string,
	apiKey string,
	jwtManager *utils.JWTManager,
	healthController *controllers.HealthController,
	registrationController *controllers.RegistrationController,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
) {
	// Liveness
	router.HandleFunc("/", healthController.Root).Methods(http.MethodGet)
	router.HandleFunc("/health", healthController.Health).Methods(http.MethodGet)

	api := router.PathPrefix(apiPrefix).Subrouter()
	api.HandleFunc("/health", healthController.AreaHealth("Registration API")).Methods(http.MethodGet)

	// Registration requires the mobile app's API key.
	registration := api.PathPrefix("/driver").Subrouter()
	registration.Use(middleware.APIKey(apiKey))
	registration.HandleFunc("", registrationController.Register).Methods(http.MethodPost)

	// Authentication
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", authController.Login).Methods(http.MethodPost)
	auth.HandleFunc("/setup-password", authController.SetupPassword).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", authController.ForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", authController.ResetPassword).Methods(http.MethodPost)
	auth.HandleFunc("/health", healthController.AreaHealth("Authentication API")).Methods(http.MethodGet)

	// Dashboard requires a Bearer token.
	dashboard := api.PathPrefix("/dashboard").Subrouter()
	dashboard.HandleFunc("/health", healthController.AreaHealth("Dashboard API")).Methods(http.MethodGet)
	protected := dashboard.NewRoute().Subrouter()
	protected.Use(middleware.Auth(jwtManager))
	protected.HandleFunc("/stats", dashboardController.Stats).Methods(http.MethodGet)
	protected.HandleFunc("/online-status", dashboardController.OnlineStatus).Methods(http.MethodPost)
	protected.HandleFunc("/booking-requests", dashboardController.BookingRequests).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{booking_id}/accept", dashboardController.AcceptBooking).Methods(http.MethodPost)
}
