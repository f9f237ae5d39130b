package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// SwipeService records likes and dislikes and reports new matches
type SwipeService struct {
	profiles repository.ProfileStore
	swipes   repository.SwipeStore
}

// NewSwipeService creates a new swipe service
func NewSwipeService(profiles repository.ProfileStore, swipes repository.SwipeStore) *SwipeService {
	return &SwipeService{
		profiles: profiles,
		swipes:   swipes,
	}
}

// RecordSwipe stores swiperID's decision on swipedID.
// Both users need a profile and a user cannot swipe on themselves.
func (s *SwipeService) RecordSwipe(ctx context.Context, swiperID, swipedID string, liked bool) (*models.SwipeResult, error) {
	swipedID = strings.TrimSpace(swipedID)
	if swipedID == "" {
		return nil, fmt.Errorf("%w: swiped_id is required", ErrInvalidInput)
	}
	if swipedID == swiperID {
		return nil, fmt.Errorf("%w: cannot swipe on yourself", ErrInvalidInput)
	}

	if _, err := s.profiles.GetProfile(ctx, swiperID); err != nil {
		return nil, fmt.Errorf("failed to get swiper profile: %w", err)
	}
	if _, err := s.profiles.GetProfile(ctx, swipedID); err != nil {
		return nil, fmt.Errorf("failed to get swiped profile: %w", err)
	}

	match, err := s.swipes.RecordSwipe(ctx, &models.Swipe{
		SwiperID:  swiperID,
		SwipedID:  swipedID,
		Liked:     liked,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record swipe: %w", err)
	}

	if match == nil {
		return &models.SwipeResult{Match: false}, nil
	}

	log.Info().
		Str("match_id", match.ID).
		Str("user1_id", match.User1ID).
		Str("user2_id", match.User2ID).
		Msg("Match created")

	return &models.SwipeResult{Match: true, MatchID: match.ID}, nil
}
