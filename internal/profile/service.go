package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/flicktrack/flicktrack/internal/apperror"
	"github.com/flicktrack/flicktrack/internal/sanitize"
)

// maxProviders caps the provider set to keep the JSON column bounded.
const maxProviders = 50

// ProfileService defines the business logic contract for profiles.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Save(ctx context.Context, userID string, req ProfileRequest) (*Profile, error)

	// Providers returns the user's provider set; a user who has never
	// saved a profile gets an empty set, not an error.
	Providers(ctx context.Context, userID string) ([]string, error)

	// ReplaceProviders replaces the set wholesale (last writer wins).
	ReplaceProviders(ctx context.Context, userID string, providers []string) ([]string, error)
}

// profileService implements ProfileService.
type profileService struct {
	repo ProfileRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(repo ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// Get returns the user's profile, or NotFound if never saved.
func (s *profileService) Get(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.Get(ctx, userID)
}

// Save validates and upserts the profile. Free-text fields are stripped of
// markup before any length check runs.
func (s *profileService) Save(ctx context.Context, userID string, req ProfileRequest) (*Profile, error) {
	req.Username = sanitize.TextPtr(req.Username)
	req.FullName = sanitize.TextPtr(req.FullName)
	req.Bio = sanitize.TextPtr(req.Bio)

	if req.Username != nil && len(*req.Username) > 100 {
		return nil, apperror.NewValidation("username must be at most 100 characters")
	}
	if req.Bio != nil && len(*req.Bio) > 2000 {
		return nil, apperror.NewValidation("bio must be at most 2000 characters")
	}

	providers, err := normalizeProviders(req.StreamingProviders)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		UserID:             userID,
		Username:           req.Username,
		FullName:           req.FullName,
		AvatarURL:          req.AvatarURL,
		Bio:                req.Bio,
		StreamingProviders: providers,
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("saving profile: %w", err))
	}

	// Re-read for the canonical timestamps.
	return s.repo.Get(ctx, userID)
}

// Providers returns the provider set, defaulting to empty for new users.
func (s *profileService) Providers(ctx context.Context, userID string) ([]string, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		if appErr, ok := err.(*apperror.AppError); ok && appErr.Code == 404 {
			return make([]string, 0), nil
		}
		return nil, apperror.NewInternal(fmt.Errorf("loading providers: %w", err))
	}
	return p.StreamingProviders, nil
}

// ReplaceProviders normalizes and persists the new set.
func (s *profileService) ReplaceProviders(ctx context.Context, userID string, providers []string) ([]string, error) {
	normalized, err := normalizeProviders(providers)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceProviders(ctx, userID, normalized); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("replacing providers: %w", err))
	}

	return normalized, nil
}

// normalizeProviders applies set semantics: trims whitespace, drops empty
// names, and removes duplicates while keeping first-seen order (order is
// not significant, but a stable order keeps responses deterministic).
func normalizeProviders(providers []string) ([]string, error) {
	seen := make(map[string]bool, len(providers))
	result := make([]string, 0, len(providers))

	for _, name := range providers {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if len(name) > 100 {
			return nil, apperror.NewValidation("provider name is too long")
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}

	if len(result) > maxProviders {
		return nil, apperror.NewValidation("too many streaming providers")
	}

	return result, nil
}
