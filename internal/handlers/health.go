package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// HealthHandler reports liveness and, when a check is set, storage readiness
type HealthHandler struct {
	check func(ctx context.Context) error
}

// NewHealthHandler creates a new health handler. check may be nil.
func NewHealthHandler(check func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{check: check}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.check != nil {
		if err := h.check(r.Context()); err != nil {
			log.Error().Err(err).Msg("Health check failed")
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
