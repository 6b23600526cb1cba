package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/eventflow/marketplace/pkg/errors"
)

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the error taxonomy onto HTTP status codes.
// Anything that is not an AppError is an internal error and its detail
// stays out of the response body.
func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusInternalServerError
	message := appErr.Message

	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidTransition:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeConflict:
		status = http.StatusConflict
	case apperrors.ErrorTypeUnauthorized:
		status = http.StatusUnauthorized
	case apperrors.ErrorTypeForbidden:
		status = http.StatusForbidden
	case apperrors.ErrorTypeExternal:
		status = http.StatusBadGateway
		message = "upstream service unavailable"
	default:
		message = "internal server error"
	}

	respondWithError(w, status, message)
}
