package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"heartmatch-backend/internal/matching"
	"heartmatch-backend/internal/models"

	"github.com/google/uuid"
)

type swipeKey struct {
	swiper string
	swiped string
}

// MemoryStore keeps users, profiles, swipes and matches in process memory.
// It implements UserStore, ProfileStore and SwipeStore.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]*models.User // id -> user
	emails       map[string]string       // email -> id
	profiles     map[string]*models.Profile
	profileOrder []string
	swipes       map[swipeKey]*models.Swipe
	swipeOrder   []swipeKey
	matches      map[swipeKey]*models.Match // ordered pair -> match
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		emails:   make(map[string]string),
		profiles: make(map[string]*models.Profile),
		swipes:   make(map[swipeKey]*models.Swipe),
		matches:  make(map[swipeKey]*models.Match),
	}
}

// CreateUser stores a user; emails are unique
func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := s.emails[email]; exists {
		return models.ErrEmailTaken
	}
	u := *user
	s.users[u.ID] = &u
	s.emails[email] = u.ID
	return nil
}

// GetUserByEmail retrieves a user by email
func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", models.ErrNotFound)
	}
	u := *s.users[id]
	return &u, nil
}

// GetUserByID retrieves a user by ID
func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found: %w", models.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

// GetProfile retrieves a profile
func (s *MemoryStore) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrProfileNotFound, userID)
	}
	return cloneProfile(p), nil
}

// GetProfilesByIDs retrieves the profiles that exist among ids
func (s *MemoryStore) GetProfilesByIDs(_ context.Context, ids []string) ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*models.Profile{}
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			out = append(out, cloneProfile(p))
		}
	}
	return out, nil
}

// CreateProfile stores a new profile
func (s *MemoryStore) CreateProfile(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[profile.ID]; exists {
		return models.ErrProfileExists
	}
	s.profiles[profile.ID] = cloneProfile(profile)
	s.profileOrder = append(s.profileOrder, profile.ID)
	return nil
}

// UpdateProfile replaces an existing profile, keeping its creation time
func (s *MemoryStore) UpdateProfile(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.profiles[profile.ID]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrProfileNotFound, profile.ID)
	}
	updated := cloneProfile(profile)
	updated.CreatedAt = existing.CreatedAt
	s.profiles[profile.ID] = updated
	return nil
}

// ListCandidateProfiles returns up to limit profiles in creation order that pass filter
func (s *MemoryStore) ListCandidateProfiles(_ context.Context, filter matching.CandidateFilter, limit int) ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	excluded := make(map[string]struct{}, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	out := []*models.Profile{}
	for _, id := range s.profileOrder {
		if len(out) >= limit {
			break
		}
		if id == filter.ExcludeID {
			continue
		}
		if _, gone := excluded[id]; gone {
			continue
		}
		p := s.profiles[id]
		if filter.Gender != "" && p.Gender != filter.Gender {
			continue
		}
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

// RecordSwipe stores a swipe and creates the match when the like is mutual.
// The whole operation runs under the write lock.
func (s *MemoryStore) RecordSwipe(_ context.Context, swipe *models.Swipe) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := swipeKey{swiper: swipe.SwiperID, swiped: swipe.SwipedID}
	if _, exists := s.swipes[key]; exists {
		return nil, models.ErrAlreadySwiped
	}
	stored := *swipe
	s.swipes[key] = &stored
	s.swipeOrder = append(s.swipeOrder, key)

	if !swipe.Liked {
		return nil, nil
	}
	reverse, ok := s.swipes[swipeKey{swiper: swipe.SwipedID, swiped: swipe.SwiperID}]
	if !ok || !reverse.Liked {
		return nil, nil
	}

	user1, user2 := models.OrderedPair(swipe.SwiperID, swipe.SwipedID)
	pair := swipeKey{swiper: user1, swiped: user2}
	match, exists := s.matches[pair]
	if !exists {
		match = &models.Match{
			ID:        uuid.New().String(),
			User1ID:   user1,
			User2ID:   user2,
			CreatedAt: swipe.CreatedAt,
		}
		s.matches[pair] = match
	}
	copied := *match
	return &copied, nil
}

// ListSwipedIDs lists every profile id userID swiped on, liked or not
func (s *MemoryStore) ListSwipedIDs(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := []string{}
	for _, key := range s.swipeOrder {
		if key.swiper == userID {
			ids = append(ids, key.swiped)
		}
	}
	return ids, nil
}

// ListSwipes lists the swipes made by userID, oldest first
func (s *MemoryStore) ListSwipes(_ context.Context, userID string) ([]*models.Swipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	swipes := []*models.Swipe{}
	for _, key := range s.swipeOrder {
		if key.swiper == userID {
			copied := *s.swipes[key]
			swipes = append(swipes, &copied)
		}
	}
	return swipes, nil
}

// ListMatches lists the matches userID takes part in, newest first
func (s *MemoryStore) ListMatches(_ context.Context, userID string) ([]*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []*models.Match{}
	for _, m := range s.matches {
		if m.User1ID == userID || m.User2ID == userID {
			copied := *m
			matches = append(matches, &copied)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID < matches[j].ID
	})
	return matches, nil
}

func cloneProfile(p *models.Profile) *models.Profile {
	c := *p
	c.Hobbies = append(models.HobbySet{}, p.Hobbies...)
	c.Traits = make(models.TraitVector, len(p.Traits))
	for k, v := range p.Traits {
		c.Traits[k] = v
	}
	return &c
}
