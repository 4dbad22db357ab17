package watched

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flicktrack/flicktrack/internal/apperror"
)

// WatchedRepository defines the data access contract for watched-movie
// records. All SQL lives in the concrete implementation.
type WatchedRepository interface {
	Get(ctx context.Context, userID string, movieID int) (*WatchedMovie, error)
	ListForUser(ctx context.Context, userID string) ([]WatchedMovie, error)

	// Upsert inserts or overwrites the record for (userID, movieID) in a
	// single atomic statement and refreshes watched_at. Last write wins.
	Upsert(ctx context.Context, input EntryInput) (*WatchedMovie, error)

	// Update overwrites the mutable fields of an existing record.
	// Returns apperror.NotFound if no record exists for the key.
	Update(ctx context.Context, input EntryInput) (*WatchedMovie, error)

	// Delete removes the record for the key.
	// Returns apperror.NotFound if no record exists.
	Delete(ctx context.Context, userID string, movieID int) error
}

// watchedRepository implements WatchedRepository with hand-written MariaDB
// queries against the watched_movies table.
type watchedRepository struct {
	db *sql.DB
}

// NewWatchedRepository creates a repository backed by the given DB pool.
func NewWatchedRepository(db *sql.DB) WatchedRepository {
	return &watchedRepository{db: db}
}

// Get retrieves the record for one (user, movie) pair.
func (r *watchedRepository) Get(ctx context.Context, userID string, movieID int) (*WatchedMovie, error) {
	query := `SELECT id, user_id, movie_id, movie_title, movie_poster, rating, review, watched_at
	          FROM watched_movies WHERE user_id = ? AND movie_id = ?`

	wm := &WatchedMovie{}
	err := r.db.QueryRowContext(ctx, query, userID, movieID).Scan(
		&wm.ID,
		&wm.UserID,
		&wm.MovieID,
		&wm.MovieTitle,
		&wm.MoviePoster,
		&wm.Rating,
		&wm.Review,
		&wm.WatchedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("movie not found in watched list")
	}
	if err != nil {
		return nil, fmt.Errorf("querying watched movie: %w", err)
	}

	return wm, nil
}

// ListForUser returns all records for a user, newest watched_at first.
func (r *watchedRepository) ListForUser(ctx context.Context, userID string) ([]WatchedMovie, error) {
	query := `SELECT id, user_id, movie_id, movie_title, movie_poster, rating, review, watched_at
	          FROM watched_movies WHERE user_id = ? ORDER BY watched_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing watched movies: %w", err)
	}
	defer rows.Close()

	movies := make([]WatchedMovie, 0)
	for rows.Next() {
		var wm WatchedMovie
		if err := rows.Scan(
			&wm.ID, &wm.UserID, &wm.MovieID, &wm.MovieTitle,
			&wm.MoviePoster, &wm.Rating, &wm.Review, &wm.WatchedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning watched movie row: %w", err)
		}
		movies = append(movies, wm)
	}

	return movies, rows.Err()
}

// Upsert inserts or overwrites via INSERT ... ON DUPLICATE KEY UPDATE on the
// (user_id, movie_id) unique key. A single statement keeps concurrent
// submissions from racing a read-then-write pair into duplicate rows; the
// database arbitrates write order.
func (r *watchedRepository) Upsert(ctx context.Context, input EntryInput) (*WatchedMovie, error) {
	query := `INSERT INTO watched_movies
	              (user_id, movie_id, movie_title, movie_poster, rating, review, watched_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)
	          ON DUPLICATE KEY UPDATE
	              movie_title = VALUES(movie_title),
	              movie_poster = VALUES(movie_poster),
	              rating = VALUES(rating),
	              review = VALUES(review),
	              watched_at = VALUES(watched_at)`

	watchedAt := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		input.UserID,
		input.MovieID,
		input.Title,
		input.PosterPath,
		input.Rating,
		input.Review,
		watchedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upserting watched movie: %w", err)
	}

	// Re-read for the surrogate ID and canonical timestamps.
	return r.Get(ctx, input.UserID, input.MovieID)
}

// Update edits an existing record in place. Unlike Upsert it never creates a
// row: editing a review for a movie that was never marked watched is a
// NotFound, not a silent insert. Fields absent from the request keep their
// stored values (COALESCE); clearing a field goes through the upsert path,
// which overwrites everything.
func (r *watchedRepository) Update(ctx context.Context, input EntryInput) (*WatchedMovie, error) {
	query := `UPDATE watched_movies
	          SET movie_title = COALESCE(?, movie_title),
	              movie_poster = COALESCE(?, movie_poster),
	              rating = COALESCE(?, rating),
	              review = COALESCE(?, review),
	              watched_at = ?
	          WHERE user_id = ? AND movie_id = ?`

	var title *string
	if input.Title != "" {
		title = &input.Title
	}

	_, err := r.db.ExecContext(ctx, query,
		title,
		input.PosterPath,
		input.Rating,
		input.Review,
		time.Now().UTC(),
		input.UserID,
		input.MovieID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating watched movie: %w", err)
	}

	// MariaDB reports zero affected rows both when the key is absent and
	// when the update was a same-second no-op, so RowsAffected alone can't
	// distinguish NotFound. The follow-up read settles it either way.
	return r.Get(ctx, input.UserID, input.MovieID)
}

// Delete removes the record for the key.
func (r *watchedRepository) Delete(ctx context.Context, userID string, movieID int) error {
	query := `DELETE FROM watched_movies WHERE user_id = ? AND movie_id = ?`

	result, err := r.db.ExecContext(ctx, query, userID, movieID)
	if err != nil {
		return fmt.Errorf("deleting watched movie: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("movie not found in watched list")
	}

	return nil
}
