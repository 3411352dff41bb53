package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"welfare-backend/internal/domain"
	"welfare-backend/internal/logger"
	"welfare-backend/internal/security"
	"welfare-backend/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func respondSuccess(w http.ResponseWriter, status int, data any) {
	body := map[string]any{"success": true}
	if data != nil {
		body["data"] = data
	}
	respondJSON(w, status, body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondServiceError maps domain errors onto the HTTP contract: validation
// failures return their message with a 400, missing records a 404, auth
// failures a 401. Anything else is logged and surfaced generically.
func respondServiceError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	default:
		logger.Error("Internal error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
