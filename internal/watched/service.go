package watched

import (
	"context"
	"fmt"

	"github.com/flicktrack/flicktrack/internal/apperror"
	"github.com/flicktrack/flicktrack/internal/sanitize"
)

// maxReviewLength caps free-text reviews well under the TEXT column limit.
const maxReviewLength = 10000

// WatchedService defines the business logic contract for watched-movie
// records. Every operation takes the owning user's resolved identity as an
// explicit argument -- ownership is the first column of the natural key, so
// a caller can only ever see or touch their own rows.
type WatchedService interface {
	Get(ctx context.Context, userID string, movieID int) (*WatchedMovie, error)
	ListForUser(ctx context.Context, userID string) ([]WatchedMovie, error)

	// MarkWatched is the sole path for creating a watched record: it
	// upserts on the (user, movie) key, overwriting all mutable fields
	// and refreshing watched_at.
	MarkWatched(ctx context.Context, input EntryInput) (*WatchedMovie, error)

	// UpdateEntry edits an existing record and fails with NotFound when
	// the movie was never marked watched (distinguishes "edit a review"
	// from "mark watched").
	UpdateEntry(ctx context.Context, input EntryInput) (*WatchedMovie, error)

	// Unmark removes the record, un-marking the movie as watched.
	Unmark(ctx context.Context, userID string, movieID int) error
}

// watchedService implements WatchedService. Validation happens here, before
// any statement reaches the repository; the schema itself does not enforce
// the rating range.
type watchedService struct {
	repo WatchedRepository
}

// NewWatchedService creates a new watched-movie service.
func NewWatchedService(repo WatchedRepository) WatchedService {
	return &watchedService{repo: repo}
}

// Get returns the record for one (user, movie) pair.
func (s *watchedService) Get(ctx context.Context, userID string, movieID int) (*WatchedMovie, error) {
	if movieID <= 0 {
		return nil, apperror.NewBadRequest("a valid movie id is required")
	}
	return s.repo.Get(ctx, userID, movieID)
}

// ListForUser returns the user's records, newest first.
func (s *watchedService) ListForUser(ctx context.Context, userID string) ([]WatchedMovie, error) {
	movies, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing watched movies: %w", err))
	}
	return movies, nil
}

// MarkWatched validates and upserts.
func (s *watchedService) MarkWatched(ctx context.Context, input EntryInput) (*WatchedMovie, error) {
	if err := validateEntry(&input, true); err != nil {
		return nil, err
	}

	wm, err := s.repo.Upsert(ctx, input)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("upserting watched movie: %w", err))
	}
	return wm, nil
}

// UpdateEntry validates and updates in place.
func (s *watchedService) UpdateEntry(ctx context.Context, input EntryInput) (*WatchedMovie, error) {
	if err := validateEntry(&input, false); err != nil {
		return nil, err
	}

	wm, err := s.repo.Update(ctx, input)
	if err != nil {
		if apperrorCode(err) == 404 {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("updating watched movie: %w", err))
	}
	return wm, nil
}

// Unmark deletes the record for the key.
func (s *watchedService) Unmark(ctx context.Context, userID string, movieID int) error {
	if movieID <= 0 {
		return apperror.NewBadRequest("a valid movie id is required")
	}
	return s.repo.Delete(ctx, userID, movieID)
}

// validateEntry checks an entry input before it reaches the repository.
// requireTitle is true on the upsert path, where the denormalized display
// fields are first written.
func validateEntry(input *EntryInput, requireTitle bool) error {
	if input.MovieID <= 0 {
		return apperror.NewBadRequest("a valid movie id is required")
	}
	if requireTitle && input.Title == "" {
		return apperror.NewBadRequest("movie title is required")
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return apperror.NewValidation("rating must be between 1 and 5")
	}
	if input.Review != nil {
		input.Review = sanitize.TextPtr(input.Review)
		if len(*input.Review) > maxReviewLength {
			return apperror.NewValidation("review is too long")
		}
	}
	return nil
}

// apperrorCode extracts the HTTP code from an AppError, or 0 otherwise.
func apperrorCode(err error) int {
	if appErr, ok := err.(*apperror.AppError); ok {
		return appErr.Code
	}
	return 0
}
