package services

import (
	"context"
	"fmt"
	"time"

	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// ProfileService handles profile setup and edits
type ProfileService struct {
	profiles repository.ProfileStore
	now      func() time.Time
}

// NewProfileService creates a new profile service
func NewProfileService(profiles repository.ProfileStore) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetProfile retrieves the profile owned by userID
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// CreateProfile sets up the profile for userID. A user has at most one profile.
func (s *ProfileService) CreateProfile(ctx context.Context, userID string, input *models.Profile) (*models.Profile, error) {
	profile, err := prepareProfile(userID, input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := s.profiles.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	log.Info().
		Str("user_id", userID).
		Int("hobbies", len(profile.Hobbies)).
		Int("traits", len(profile.Traits)).
		Msg("Profile created")

	return profile, nil
}

// UpdateProfile replaces the editable fields of the profile owned by userID
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, input *models.Profile) (*models.Profile, error) {
	profile, err := prepareProfile(userID, input)
	if err != nil {
		return nil, err
	}

	existing, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = s.now()

	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	log.Info().Str("user_id", userID).Msg("Profile updated")
	return profile, nil
}

func prepareProfile(userID string, input *models.Profile) (*models.Profile, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidInput)
	}
	profile := *input
	profile.ID = userID
	profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return &profile, nil
}
