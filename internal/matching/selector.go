package matching

import (
	"context"
	"fmt"
	"sort"

	"heartmatch-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// DefaultPoolSize bounds how many candidates are fetched from storage before scoring.
// The bound is applied by the store, so ranking covers a storage-ordered sample
// rather than the global top candidates.
const DefaultPoolSize = 50

// CandidateFilter describes which profiles the store must leave out of a pool
type CandidateFilter struct {
	ExcludeID  string
	Gender     string // empty means any gender
	ExcludeIDs []string
}

// CandidateSource is the storage the selector reads from.
// GetProfile reports a missing profile with models.ErrProfileNotFound.
type CandidateSource interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	ListSwipedIDs(ctx context.Context, userID string) ([]string, error)
	ListCandidateProfiles(ctx context.Context, filter CandidateFilter, limit int) ([]*models.Profile, error)
}

// Selector picks unseen candidates for a requester and ranks them
type Selector struct {
	source   CandidateSource
	poolSize int
}

// NewSelector creates a selector with the default pool size
func NewSelector(source CandidateSource) *Selector {
	return &Selector{source: source, poolSize: DefaultPoolSize}
}

// WithPoolSize returns a copy of the selector using a different pool bound
func (s *Selector) WithPoolSize(n int) *Selector {
	if n <= 0 {
		n = DefaultPoolSize
	}
	return &Selector{source: s.source, poolSize: n}
}

// Discover returns candidates for requesterID ordered by compatibility, highest first.
// Candidates with equal scores keep the order the store returned them in.
// A requester without a profile yields models.ErrProfileNotFound.
func (s *Selector) Discover(ctx context.Context, requesterID string) ([]models.ScoredProfile, error) {
	requester, err := s.source.GetProfile(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrProfileNotFound, requesterID)
	}

	swiped, err := s.source.ListSwipedIDs(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list swiped ids: %w", err)
	}

	filter := CandidateFilter{
		ExcludeID:  requesterID,
		Gender:     GenderFilter(requester.LookingFor),
		ExcludeIDs: swiped,
	}

	pool, err := s.source.ListCandidateProfiles(ctx, filter, s.poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	pool = applyGuards(filter, pool)

	scored := make([]models.ScoredProfile, 0, len(pool))
	for _, candidate := range pool {
		scored = append(scored, models.ScoredProfile{
			Profile:            *candidate,
			CompatibilityScore: Score(requester, candidate),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CompatibilityScore > scored[j].CompatibilityScore
	})

	log.Debug().
		Str("user_id", requesterID).
		Int("candidates", len(scored)).
		Msg("Discovery ranked")

	return scored, nil
}

// GenderFilter maps a looking_for preference to the gender a candidate must have.
// "everyone" maps to no filter.
func GenderFilter(lookingFor string) string {
	if lookingFor == models.LookingForEveryone {
		return ""
	}
	return lookingFor
}
