package services

import (
	"context"
	"fmt"

	"heartmatch-backend/internal/matching"
	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/repository"
)

// Compatibility is the score of another profile as seen by the requester
type Compatibility struct {
	UserID string `json:"user_id"`
	matching.Breakdown
}

// DiscoveryService ranks candidates and explains scores
type DiscoveryService struct {
	selector *matching.Selector
	profiles repository.ProfileStore
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(profiles repository.ProfileStore, swipes repository.SwipeStore, poolSize int) *DiscoveryService {
	source := repository.NewCandidateSource(profiles, swipes)
	return &DiscoveryService{
		selector: matching.NewSelector(source).WithPoolSize(poolSize),
		profiles: profiles,
	}
}

// Discover returns unseen candidates for userID, most compatible first
func (s *DiscoveryService) Discover(ctx context.Context, userID string) ([]models.ScoredProfile, error) {
	profiles, err := s.selector.Discover(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to discover candidates: %w", err)
	}
	return profiles, nil
}

// Compatibility explains the score of otherID's profile for userID
func (s *DiscoveryService) Compatibility(ctx context.Context, userID, otherID string) (*Compatibility, error) {
	requester, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requester profile: %w", err)
	}
	other, err := s.profiles.GetProfile(ctx, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &Compatibility{
		UserID:    otherID,
		Breakdown: matching.Explain(requester, other),
	}, nil
}
