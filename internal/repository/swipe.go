package repository

import (
	"context"
	"fmt"

	"heartmatch-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SwipeRepository handles database operations for swipes and matches
type SwipeRepository struct {
	db *pgxpool.Pool
}

// NewSwipeRepository creates a new swipe repository
func NewSwipeRepository(db *pgxpool.Pool) *SwipeRepository {
	return &SwipeRepository{db: db}
}

// RecordSwipe inserts a swipe and creates the match when the like is mutual.
// Both directions of a pair take the same advisory lock, so two concurrent
// reciprocal likes are serialised and the second one sees the first.
func (r *SwipeRepository) RecordSwipe(ctx context.Context, swipe *models.Swipe) (*models.Match, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	user1, user2 := models.OrderedPair(swipe.SwiperID, swipe.SwipedID)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text))`, user1+":"+user2); err != nil {
		return nil, fmt.Errorf("failed to lock pair: %w", err)
	}

	result, err := tx.Exec(ctx, `
		INSERT INTO swipes (swiper_id, swiped_id, liked, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (swiper_id, swiped_id) DO NOTHING
	`, swipe.SwiperID, swipe.SwipedID, swipe.Liked, swipe.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert swipe: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, models.ErrAlreadySwiped
	}

	var match *models.Match
	if swipe.Liked {
		var mutual bool
		err := tx.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM swipes
				WHERE swiper_id = $1 AND swiped_id = $2 AND liked
			)
		`, swipe.SwipedID, swipe.SwiperID).Scan(&mutual)
		if err != nil {
			return nil, fmt.Errorf("failed to check reciprocal swipe: %w", err)
		}

		if mutual {
			_, err := tx.Exec(ctx, `
				INSERT INTO matches (id, user1_id, user2_id, created_at)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (user1_id, user2_id) DO NOTHING
			`, uuid.New().String(), user1, user2, swipe.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("failed to create match: %w", err)
			}

			match = &models.Match{}
			err = tx.QueryRow(ctx, `
				SELECT id, user1_id, user2_id, created_at
				FROM matches
				WHERE user1_id = $1 AND user2_id = $2
			`, user1, user2).Scan(&match.ID, &match.User1ID, &match.User2ID, &match.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("failed to get match: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit swipe: %w", err)
	}
	return match, nil
}

// ListSwipedIDs lists every profile id userID swiped on, liked or not
func (r *SwipeRepository) ListSwipedIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT swiped_id FROM swipes WHERE swiper_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get swiped ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan swiped id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swiped ids: %w", err)
	}
	return ids, nil
}

// ListSwipes lists the swipes made by userID, oldest first
func (r *SwipeRepository) ListSwipes(ctx context.Context, userID string) ([]*models.Swipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT swiper_id, swiped_id, liked, created_at
		FROM swipes
		WHERE swiper_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get swipes: %w", err)
	}
	defer rows.Close()

	swipes := []*models.Swipe{}
	for rows.Next() {
		var s models.Swipe
		if err := rows.Scan(&s.SwiperID, &s.SwipedID, &s.Liked, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan swipe: %w", err)
		}
		swipes = append(swipes, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swipes: %w", err)
	}
	return swipes, nil
}

// ListMatches lists the matches userID takes part in, newest first
func (r *SwipeRepository) ListMatches(ctx context.Context, userID string) ([]*models.Match, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user1_id, user2_id, created_at
		FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY created_at DESC, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}
	defer rows.Close()

	matches := []*models.Match{}
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.User1ID, &m.User2ID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}
	return matches, nil
}
