package repository

import (
	"context"
	"errors"
	"fmt"

	"heartmatch-backend/internal/matching"
	"heartmatch-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const profileColumns = `id, display_name, age, bio, gender, looking_for, location, created_at, updated_at`

// ProfileRepository handles database operations for profiles, hobbies and traits
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfile retrieves a profile with its hobbies and traits
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", models.ErrProfileNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if err := loadCollections(ctx, r.db, []*models.Profile{profile}); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfilesByIDs retrieves the profiles that exist among ids
func (r *ProfileRepository) GetProfilesByIDs(ctx context.Context, ids []string) ([]*models.Profile, error) {
	if len(ids) == 0 {
		return []*models.Profile{}, nil
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ANY($1)`
	return r.queryProfiles(ctx, query, ids)
}

// ListCandidateProfiles returns up to limit profiles that pass filter, oldest profiles first
func (r *ProfileRepository) ListCandidateProfiles(ctx context.Context, filter matching.CandidateFilter, limit int) ([]*models.Profile, error) {
	excluded := filter.ExcludeIDs
	if excluded == nil {
		// ANY(NULL) would exclude every row
		excluded = []string{}
	}
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id <> $1
		  AND ($2::text = '' OR gender = $2)
		  AND NOT (id = ANY($3))
		ORDER BY created_at, id
		LIMIT $4
	`
	return r.queryProfiles(ctx, query, filter.ExcludeID, filter.Gender, excluded, limit)
}

// CreateProfile inserts a profile with its hobbies and traits
func (r *ProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.Exec(ctx, query,
		profile.ID, profile.DisplayName, profile.Age, profile.Bio, profile.Gender,
		profile.LookingFor, profile.Location, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrProfileExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	if err := writeCollections(ctx, tx, profile); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}

// UpdateProfile replaces a profile's fields, hobbies and traits
func (r *ProfileRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE profiles
		SET display_name = $2, age = $3, bio = $4, gender = $5, looking_for = $6,
		    location = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := tx.Exec(ctx, query,
		profile.ID, profile.DisplayName, profile.Age, profile.Bio, profile.Gender,
		profile.LookingFor, profile.Location, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", models.ErrProfileNotFound, profile.ID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM hobbies WHERE user_id = $1`, profile.ID); err != nil {
		return fmt.Errorf("failed to clear hobbies: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM personality_traits WHERE user_id = $1`, profile.ID); err != nil {
		return fmt.Errorf("failed to clear traits: %w", err)
	}
	if err := writeCollections(ctx, tx, profile); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) queryProfiles(ctx context.Context, query string, args ...any) ([]*models.Profile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	if err := loadCollections(ctx, r.db, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	var bio, location *string
	err := row.Scan(
		&p.ID, &p.DisplayName, &p.Age, &bio, &p.Gender, &p.LookingFor,
		&location, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if bio != nil {
		p.Bio = *bio
	}
	if location != nil {
		p.Location = *location
	}
	p.Hobbies = models.HobbySet{}
	p.Traits = models.TraitVector{}
	return &p, nil
}

// loadCollections fills hobbies and traits for profiles with two queries
func loadCollections(ctx context.Context, q querier, profiles []*models.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	byID := make(map[string]*models.Profile, len(profiles))
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := q.Query(ctx, `
		SELECT user_id, hobby FROM hobbies
		WHERE user_id = ANY($1)
		ORDER BY user_id, position
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to get hobbies: %w", err)
	}
	for rows.Next() {
		var userID, hobby string
		if err := rows.Scan(&userID, &hobby); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan hobby: %w", err)
		}
		if p, ok := byID[userID]; ok {
			p.Hobbies = append(p.Hobbies, hobby)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating hobbies: %w", err)
	}

	rows, err = q.Query(ctx, `
		SELECT user_id, trait, value FROM personality_traits
		WHERE user_id = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to get traits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var userID, trait string
		var value int
		if err := rows.Scan(&userID, &trait, &value); err != nil {
			return fmt.Errorf("failed to scan trait: %w", err)
		}
		if p, ok := byID[userID]; ok {
			p.Traits[trait] = value
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating traits: %w", err)
	}
	return nil
}

func writeCollections(ctx context.Context, q querier, profile *models.Profile) error {
	for i, hobby := range profile.Hobbies {
		_, err := q.Exec(ctx,
			`INSERT INTO hobbies (user_id, position, hobby) VALUES ($1, $2, $3)`,
			profile.ID, i, hobby,
		)
		if err != nil {
			return fmt.Errorf("failed to insert hobby: %w", err)
		}
	}
	for trait, value := range profile.Traits {
		_, err := q.Exec(ctx,
			`INSERT INTO personality_traits (user_id, trait, value) VALUES ($1, $2, $3)`,
			profile.ID, trait, value,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trait: %w", err)
		}
	}
	return nil
}
