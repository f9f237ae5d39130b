package repository

import (
	"context"

	"heartmatch-backend/internal/matching"
	"heartmatch-backend/internal/models"
)

// UserStore persists accounts
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// ProfileStore persists profiles together with their hobbies and traits
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	GetProfilesByIDs(ctx context.Context, ids []string) ([]*models.Profile, error)
	CreateProfile(ctx context.Context, profile *models.Profile) error
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	ListCandidateProfiles(ctx context.Context, filter matching.CandidateFilter, limit int) ([]*models.Profile, error)
}

// SwipeStore persists swipes and the matches derived from them.
//
// RecordSwipe inserts the swipe and, when it completes a pair of likes, creates
// the match in the same atomic step. A second swipe by the same swiper on the
// same target is rejected with models.ErrAlreadySwiped. The returned match is
// nil when the swipe did not complete a pair.
type SwipeStore interface {
	RecordSwipe(ctx context.Context, swipe *models.Swipe) (*models.Match, error)
	ListSwipedIDs(ctx context.Context, userID string) ([]string, error)
	ListSwipes(ctx context.Context, userID string) ([]*models.Swipe, error)
	ListMatches(ctx context.Context, userID string) ([]*models.Match, error)
}

// CandidateSource joins a profile store and a swipe store into the view the selector needs
type CandidateSource struct {
	profiles ProfileStore
	swipes   SwipeStore
}

// NewCandidateSource creates a candidate source
func NewCandidateSource(profiles ProfileStore, swipes SwipeStore) *CandidateSource {
	return &CandidateSource{profiles: profiles, swipes: swipes}
}

// GetProfile retrieves a profile
func (s *CandidateSource) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profiles.GetProfile(ctx, userID)
}

// ListSwipedIDs lists the ids userID already swiped on
func (s *CandidateSource) ListSwipedIDs(ctx context.Context, userID string) ([]string, error) {
	return s.swipes.ListSwipedIDs(ctx, userID)
}

// ListCandidateProfiles lists a bounded candidate pool
func (s *CandidateSource) ListCandidateProfiles(ctx context.Context, filter matching.CandidateFilter, limit int) ([]*models.Profile, error) {
	return s.profiles.ListCandidateProfiles(ctx, filter, limit)
}
