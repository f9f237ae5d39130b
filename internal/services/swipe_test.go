package services

import (
	"context"
	"testing"

	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProfiles(t *testing.T, store *repository.MemoryStore, ids ...string) {
	t.Helper()
	svc := NewProfileService(store)
	for _, id := range ids {
		_, err := svc.CreateProfile(context.Background(), id, profileInput(id, "female", "everyone", "chess"))
		require.NoError(t, err)
	}
}

func TestRecordSwipeMutualLike(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedProfiles(t, store, "a", "b")
	svc := NewSwipeService(store, store)

	res, err := svc.RecordSwipe(ctx, "a", "b", true)
	require.NoError(t, err)
	assert.False(t, res.Match)
	assert.Empty(t, res.MatchID)

	res, err = svc.RecordSwipe(ctx, "b", "a", true)
	require.NoError(t, err)
	assert.True(t, res.Match)
	assert.NotEmpty(t, res.MatchID)

	_, err = svc.RecordSwipe(ctx, "b", "a", false)
	assert.ErrorIs(t, err, models.ErrAlreadySwiped)
}

func TestRecordSwipeDislikeNeverMatches(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedProfiles(t, store, "a", "b")
	svc := NewSwipeService(store, store)

	_, err := svc.RecordSwipe(ctx, "a", "b", true)
	require.NoError(t, err)
	res, err := svc.RecordSwipe(ctx, "b", "a", false)
	require.NoError(t, err)
	assert.False(t, res.Match)

	matches, err := store.ListMatches(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRecordSwipeRejects(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedProfiles(t, store, "a")
	svc := NewSwipeService(store, store)

	_, err := svc.RecordSwipe(ctx, "a", "a", true)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordSwipe(ctx, "a", "  ", true)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordSwipe(ctx, "a", "ghost", true)
	assert.ErrorIs(t, err, models.ErrProfileNotFound)

	_, err = svc.RecordSwipe(ctx, "ghost", "a", true)
	assert.ErrorIs(t, err, models.ErrProfileNotFound)
}
