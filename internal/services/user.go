package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	defaultTokenTTL   = 30 * 24 * time.Hour
)

// AuthResponse is returned after a successful register or login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService handles accounts and tokens
type UserService struct {
	users     repository.UserStore
	jwtSecret string
	tokenTTL  time.Duration
}

// NewUserService creates a new user service
func NewUserService(users repository.UserStore, jwtSecret string, tokenTTL time.Duration) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &UserService{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Register creates an account and signs a token for it
func (s *UserService) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

// Login checks credentials and signs a new token.
// Unknown emails and wrong passwords both yield ErrUnauthenticated.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	}

	token, err := s.GenerateJWT(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}

// GenerateJWT generates a JWT token for a user
func (s *UserService) GenerateJWT(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the user ID
func (s *UserService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse token: %v", ErrUnauthenticated, err)
	}

	if !token.Valid {
		return "", fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: invalid token claims", ErrUnauthenticated)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("%w: user_id not found in token", ErrUnauthenticated)
	}

	return userID, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	return email, nil
}
