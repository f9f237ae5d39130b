package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProfiles records how GetProfilesByIDs is called
type countingProfiles struct {
	repository.ProfileStore
	calls [][]string
	err   error
}

func (c *countingProfiles) GetProfilesByIDs(ctx context.Context, ids []string) ([]*models.Profile, error) {
	c.calls = append(c.calls, append([]string(nil), ids...))
	if c.err != nil {
		return nil, c.err
	}
	return c.ProfileStore.GetProfilesByIDs(ctx, ids)
}

func like(t *testing.T, store *repository.MemoryStore, from, to string, at time.Time) {
	t.Helper()
	_, err := store.RecordSwipe(context.Background(), &models.Swipe{SwiperID: from, SwipedID: to, Liked: true, CreatedAt: at})
	require.NoError(t, err)
}

func TestListMatchesBatchesProfiles(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedProfiles(t, store, "a", "b", "c", "d")
	base := time.Now()
	for i, other := range []string{"b", "c", "d"} {
		at := base.Add(time.Duration(i) * time.Minute)
		like(t, store, other, "a", at)
		like(t, store, "a", other, at)
	}

	profiles := &countingProfiles{ProfileStore: store}
	svc := NewMatchService(profiles, store)

	entries, err := svc.ListMatches(ctx, "a")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "d", entries[0].Profile.ID)
	assert.Equal(t, "c", entries[1].Profile.ID)
	assert.Equal(t, "b", entries[2].Profile.ID)
	assert.NotEmpty(t, entries[0].MatchID)
	assert.False(t, entries[0].MatchedAt.IsZero())

	require.Len(t, profiles.calls, 1)
	assert.ElementsMatch(t, []string{"b", "c", "d"}, profiles.calls[0])

	// the other side sees a
	entries, err = svc.ListMatches(ctx, "b")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Profile.ID)
}

func TestListMatchesSkipsMissingProfiles(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedProfiles(t, store, "a", "b")
	now := time.Now()
	like(t, store, "a", "b", now)
	like(t, store, "b", "a", now)
	like(t, store, "a", "ghost", now.Add(time.Minute))
	like(t, store, "ghost", "a", now.Add(time.Minute))

	entries, err := NewMatchService(store, store).ListMatches(ctx, "a")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].Profile.ID)
}

func TestListMatchesEmpty(t *testing.T) {
	store := repository.NewMemoryStore()
	entries, err := NewMatchService(store, store).ListMatches(context.Background(), "a")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestListMatchesStoreFailure(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedProfiles(t, store, "a", "b")
	like(t, store, "a", "b", time.Now())
	like(t, store, "b", "a", time.Now())

	boom := errors.New("boom")
	profiles := &countingProfiles{ProfileStore: store, err: boom}
	_, err := NewMatchService(profiles, store).ListMatches(ctx, "a")
	assert.ErrorIs(t, err, boom)
}
