package handlers

import (
	"net/http"

	"heartmatch-backend/internal/middleware"
	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/services"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// ProfileRequest is the editable part of a profile
type ProfileRequest struct {
	DisplayName string             `json:"display_name"`
	Age         int                `json:"age"`
	Bio         string             `json:"bio"`
	Gender      string             `json:"gender"`
	LookingFor  string             `json:"looking_for"`
	Location    string             `json:"location"`
	Hobbies     []string           `json:"hobbies"`
	Traits      models.TraitVector `json:"traits"`
}

func (req *ProfileRequest) toProfile() *models.Profile {
	return &models.Profile{
		DisplayName: req.DisplayName,
		Age:         req.Age,
		Bio:         req.Bio,
		Gender:      req.Gender,
		LookingFor:  req.LookingFor,
		Location:    req.Location,
		Hobbies:     req.Hobbies,
		Traits:      req.Traits,
	}
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, userID, "get profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// CreateProfile handles POST /api/v1/profile
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.profileService.CreateProfile(r.Context(), userID, req.toProfile())
	if err != nil {
		respondServiceError(w, err, userID, "create profile")
		return
	}

	respondJSON(w, http.StatusCreated, profile)
}

// UpdateProfile handles PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.profileService.UpdateProfile(r.Context(), userID, req.toProfile())
	if err != nil {
		respondServiceError(w, err, userID, "update profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
