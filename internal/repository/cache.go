package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"heartmatch-backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// versionTTL keeps a profile's invalidation counter well past any entry it guards
const versionTTL = 24 * time.Hour

var errStaleFill = errors.New("profile changed while loading")

// CachedProfileStore caches single-profile reads in Redis.
// Writes go to the wrapped store first, then bump the profile's version and
// drop the cached entry. A read that missed only fills the cache when the
// version is unchanged since the read started, so a load racing an update
// never caches the old profile. Cache failures are logged and never fail a request.
type CachedProfileStore struct {
	ProfileStore
	client *redis.Client
	ttl    time.Duration
}

// NewCachedProfileStore wraps store with a Redis read-through cache
func NewCachedProfileStore(store ProfileStore, client *redis.Client, ttl time.Duration) *CachedProfileStore {
	return &CachedProfileStore{ProfileStore: store, client: client, ttl: ttl}
}

func profileCacheKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

func profileVersionKey(userID string) string {
	return fmt.Sprintf("profile:%s:version", userID)
}

// GetProfile returns the cached profile or loads and caches it
func (s *CachedProfileStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	key := profileCacheKey(userID)

	val, err := s.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var profile models.Profile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
		log.Warn().Str("key", key).Msg("Discarding unreadable cached profile")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("key", key).Msg("Profile cache read failed")
		return s.ProfileStore.GetProfile(ctx, userID)
	}

	version, verr := s.version(ctx, userID)

	profile, err := s.ProfileStore.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if verr != nil {
		log.Warn().Err(verr).Str("key", key).Msg("Profile cache version read failed")
		return profile, nil
	}
	s.fill(ctx, userID, version, profile)
	return profile, nil
}

// CreateProfile stores the profile and drops any stale cache entry
func (s *CachedProfileStore) CreateProfile(ctx context.Context, profile *models.Profile) error {
	if err := s.ProfileStore.CreateProfile(ctx, profile); err != nil {
		return err
	}
	s.invalidate(ctx, profile.ID)
	return nil
}

// UpdateProfile stores the profile and drops the cache entry
func (s *CachedProfileStore) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	if err := s.ProfileStore.UpdateProfile(ctx, profile); err != nil {
		return err
	}
	s.invalidate(ctx, profile.ID)
	return nil
}

// version reads the invalidation counter; a missing counter is version 0
func (s *CachedProfileStore) version(ctx context.Context, userID string) (int64, error) {
	v, err := s.client.Get(ctx, profileVersionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// fill caches profile unless userID was invalidated after version was read
func (s *CachedProfileStore) fill(ctx context.Context, userID string, version int64, profile *models.Profile) {
	key := profileCacheKey(userID)
	data, err := json.Marshal(profile)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Profile cache encode failed")
		return
	}

	versionKey := profileVersionKey(userID)
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}
		if current != version {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}, versionKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		log.Debug().Str("key", key).Msg("Skipping cache fill for a profile updated during load")
	default:
		log.Warn().Err(err).Str("key", key).Msg("Profile cache write failed")
	}
}

func (s *CachedProfileStore) invalidate(ctx context.Context, userID string) {
	versionKey := profileVersionKey(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, versionTTL)
		pipe.Del(ctx, profileCacheKey(userID))
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Profile cache invalidation failed")
	}
}
