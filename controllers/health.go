package controllers

import (
	"net/http"

	"hotride-driver-api/utils"
)

const (
	serviceName    = "HotRide Driver API"
	serviceVersion = "1.0.0"
)

// HealthController serves the liveness endpoints.
type HealthController struct{}

// NewHealthController creates a HealthController.
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Root handles GET /.
func (c *HealthController) Root(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"service": serviceName,
		"version": serviceVersion,
		"status":  "running",
	})
}

// Health handles GET /health.
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// AreaHealth returns a health handler for one API area.
func (c *HealthController) AreaHealth(area string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": area,
		})
	}
}
