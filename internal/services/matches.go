package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/repository"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/rs/zerolog/log"
)

const profileBatchWait = 16 * time.Millisecond

// MatchEntry is a match as seen by one participant
type MatchEntry struct {
	MatchID   string          `json:"match_id"`
	MatchedAt time.Time       `json:"matched_at"`
	Profile   *models.Profile `json:"profile"`
}

// MatchService lists matches together with the other participant's profile
type MatchService struct {
	profiles repository.ProfileStore
	swipes   repository.SwipeStore
}

// NewMatchService creates a new match service
func NewMatchService(profiles repository.ProfileStore, swipes repository.SwipeStore) *MatchService {
	return &MatchService{
		profiles: profiles,
		swipes:   swipes,
	}
}

// ListMatches returns userID's matches, newest first.
// Profiles are fetched in a single batch. Matches whose other participant
// has no profile are left out.
func (s *MatchService) ListMatches(ctx context.Context, userID string) ([]MatchEntry, error) {
	matches, err := s.swipes.ListMatches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	entries := make([]MatchEntry, 0, len(matches))
	if len(matches) == 0 {
		return entries, nil
	}

	otherIDs := make([]string, len(matches))
	for i, m := range matches {
		otherIDs[i] = m.OtherUserID(userID)
	}

	loader := s.newProfileLoader(len(otherIDs))
	profiles, errs := loader.LoadMany(ctx, otherIDs)()

	for i, m := range matches {
		if i < len(errs) && errs[i] != nil {
			if errors.Is(errs[i], models.ErrProfileNotFound) {
				log.Warn().Str("match_id", m.ID).Str("user_id", otherIDs[i]).Msg("Matched profile missing")
				continue
			}
			return nil, fmt.Errorf("failed to load matched profile: %w", errs[i])
		}
		entries = append(entries, MatchEntry{
			MatchID:   m.ID,
			MatchedAt: m.CreatedAt,
			Profile:   profiles[i],
		})
	}

	return entries, nil
}

// newProfileLoader builds a per-call loader so cached profiles never outlive a request.
// The batch dispatches as soon as it holds size keys.
func (s *MatchService) newProfileLoader(size int) *dataloader.Loader[string, *models.Profile] {
	return dataloader.NewBatchedLoader(
		profileBatchFn(s.profiles),
		dataloader.WithWait[string, *models.Profile](profileBatchWait),
		dataloader.WithBatchCapacity[string, *models.Profile](size),
	)
}

func profileBatchFn(store repository.ProfileStore) dataloader.BatchFunc[string, *models.Profile] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[*models.Profile] {
		results := make([]*dataloader.Result[*models.Profile], len(keys))

		profiles, err := store.GetProfilesByIDs(ctx, keys)
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result[*models.Profile]{Error: err}
			}
			return results
		}

		byID := make(map[string]*models.Profile, len(profiles))
		for _, p := range profiles {
			byID[p.ID] = p
		}

		for i, key := range keys {
			if p, ok := byID[key]; ok {
				results[i] = &dataloader.Result[*models.Profile]{Data: p}
				continue
			}
			results[i] = &dataloader.Result[*models.Profile]{
				Error: fmt.Errorf("%w: %s", models.ErrProfileNotFound, key),
			}
		}
		return results
	}
}
