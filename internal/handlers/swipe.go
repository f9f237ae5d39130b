package handlers

import (
	"net/http"

	"heartmatch-backend/internal/middleware"
	"heartmatch-backend/internal/services"
)

// SwipeHandler handles swipe HTTP requests
type SwipeHandler struct {
	swipeService *services.SwipeService
}

// NewSwipeHandler creates a new swipe handler
func NewSwipeHandler(swipeService *services.SwipeService) *SwipeHandler {
	return &SwipeHandler{
		swipeService: swipeService,
	}
}

// SwipeRequest represents the request body for a swipe
type SwipeRequest struct {
	SwipedID string `json:"swiped_id"`
	Liked    *bool  `json:"liked"`
}

// CreateSwipe handles POST /api/v1/swipes
func (h *SwipeHandler) CreateSwipe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.SwipedID == "" || req.Liked == nil {
		respondError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.swipeService.RecordSwipe(r.Context(), userID, req.SwipedID, *req.Liked)
	if err != nil {
		respondServiceError(w, err, userID, "record swipe")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
