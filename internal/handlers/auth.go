package handlers

import (
	"net/http"

	"heartmatch-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles account HTTP requests
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// CredentialsRequest is the body of register and login
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.userService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err, "", "register")
		return
	}

	log.Info().Str("user_id", resp.User.ID).Msg("User registered")
	respondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err, "", "log in")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
