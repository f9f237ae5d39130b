package handlers

import (
	"net/http"

	"heartmatch-backend/internal/middleware"
	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// DiscoverHandler handles candidate discovery HTTP requests
type DiscoverHandler struct {
	discoveryService *services.DiscoveryService
}

// NewDiscoverHandler creates a new discover handler
func NewDiscoverHandler(discoveryService *services.DiscoveryService) *DiscoverHandler {
	return &DiscoverHandler{
		discoveryService: discoveryService,
	}
}

// DiscoverResponse lists ranked candidates
type DiscoverResponse struct {
	Profiles []models.ScoredProfile `json:"profiles"`
}

// Discover handles GET /api/v1/discover
func (h *DiscoverHandler) Discover(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profiles, err := h.discoveryService.Discover(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, userID, "discover profiles")
		return
	}

	respondJSON(w, http.StatusOK, DiscoverResponse{Profiles: profiles})
}

// Compatibility handles GET /api/v1/profiles/{user_id}/compatibility
func (h *DiscoverHandler) Compatibility(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	otherID := chi.URLParam(r, "user_id")

	result, err := h.discoveryService.Compatibility(r.Context(), userID, otherID)
	if err != nil {
		respondServiceError(w, err, userID, "compute compatibility")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
