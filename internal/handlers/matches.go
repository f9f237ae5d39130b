package handlers

import (
	"net/http"

	"heartmatch-backend/internal/middleware"
	"heartmatch-backend/internal/services"
)

// MatchHandler handles match HTTP requests
type MatchHandler struct {
	matchService *services.MatchService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// MatchesResponse lists a user's matches
type MatchesResponse struct {
	Matches []services.MatchEntry `json:"matches"`
}

// ListMatches handles GET /api/v1/matches
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	entries, err := h.matchService.ListMatches(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, userID, "list matches")
		return
	}

	respondJSON(w, http.StatusOK, MatchesResponse{Matches: entries})
}
