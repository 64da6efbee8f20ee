package utils

import (
	"encoding/json"
	"net/http"
)

// SuccessBody is the unified success response envelope.
type SuccessBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody is the unified error response envelope. Error is a short
// machine-readable category; Message is human-readable.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Error categories used across the API.
const (
	ErrValidation   = "validation_error"
	ErrUnauthorized = "unauthorized"
	ErrForbidden    = "forbidden"
	ErrNotFound     = "not_found"
	ErrConflict     = "conflict"
	ErrGone         = "gone"
	ErrInternal     = "internal_error"
)

// RespondJSON writes payload as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondSuccess writes the success envelope.
func RespondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondJSON(w, status, SuccessBody{Success: true, Message: message, Data: data})
}

// RespondError writes the error envelope.
func RespondError(w http.ResponseWriter, status int, category, message string) {
	RespondJSON(w, status, ErrorBody{Success: false, Error: category, Message: message})
}
