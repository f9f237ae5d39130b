package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// statusFor maps a service error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrProfileNotFound), errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, models.ErrInvalidProfile):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrAlreadySwiped),
		errors.Is(err, models.ErrProfileExists),
		errors.Is(err, models.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrExportDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError logs err and writes the matching status.
// Server errors get a generic message so internals do not leak.
func respondServiceError(w http.ResponseWriter, err error, userID, action string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to " + action)
		respondError(w, "Failed to "+action, status)
		return
	}

	log.Debug().Err(err).Str("user_id", userID).Int("status", status).Msg("Request rejected")
	respondError(w, publicMessage(err), status)
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return "Invalid email or password"
	case errors.Is(err, models.ErrProfileNotFound):
		return "Profile not found"
	case errors.Is(err, models.ErrNotFound):
		return "Not found"
	case errors.Is(err, models.ErrAlreadySwiped):
		return "Already swiped on this profile"
	case errors.Is(err, models.ErrProfileExists):
		return "Profile already exists"
	case errors.Is(err, models.ErrEmailTaken):
		return "Email already registered"
	case errors.Is(err, services.ErrExportDisabled):
		return "Export is not configured"
	default:
		return err.Error()
	}
}

// decodeJSON reads the request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}
