package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"heartmatch-backend/internal/models"
	"heartmatch-backend/internal/repository"
	"heartmatch-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrExportDisabled is returned when no object storage is configured
var ErrExportDisabled = errors.New("export is not configured")

// Uploader stores a document and returns a download link for it
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (*storage.Upload, error)
}

// AccountExport is the document a user downloads with their data
type AccountExport struct {
	ExportedAt time.Time       `json:"exported_at"`
	User       *models.User    `json:"user"`
	Profile    *models.Profile `json:"profile,omitempty"`
	Swipes     []*models.Swipe `json:"swipes"`
	Matches    []*models.Match `json:"matches"`
}

// ExportService assembles a user's data and stores it for download
type ExportService struct {
	users    repository.UserStore
	profiles repository.ProfileStore
	swipes   repository.SwipeStore
	uploader Uploader
}

// NewExportService creates a new export service. A nil uploader disables exports.
func NewExportService(users repository.UserStore, profiles repository.ProfileStore, swipes repository.SwipeStore, uploader Uploader) *ExportService {
	return &ExportService{
		users:    users,
		profiles: profiles,
		swipes:   swipes,
		uploader: uploader,
	}
}

// Build collects userID's account data
func (s *ExportService) Build(ctx context.Context, userID string) (*AccountExport, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, models.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	swipes, err := s.swipes.ListSwipes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list swipes: %w", err)
	}

	matches, err := s.swipes.ListMatches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	return &AccountExport{
		ExportedAt: time.Now().UTC(),
		User:       user,
		Profile:    profile,
		Swipes:     swipes,
		Matches:    matches,
	}, nil
}

// Export builds userID's export and uploads it
func (s *ExportService) Export(ctx context.Context, userID string) (*storage.Upload, error) {
	if s.uploader == nil {
		return nil, ErrExportDisabled
	}

	doc, err := s.Build(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", userID, uuid.New().String())
	upload, err := s.uploader.Upload(ctx, key, "application/json", body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	log.Info().
		Str("user_id", userID).
		Str("key", key).
		Int("bytes", len(body)).
		Msg("Account export stored")

	return upload, nil
}
