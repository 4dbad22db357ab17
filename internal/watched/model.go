// Package watched owns the watched-movie record lifecycle: one row per
// (user, movie) pair holding the user's rating, review, and watch timestamp,
// plus denormalized display fields so lists render without a catalog call.
package watched

import (
	"time"
)

// WatchedMovie is a single "user X watched movie Y" record. The
// (UserID, MovieID) pair is the natural key; the surrogate ID exists only
// because auto-increment rows are cheap and make debugging easier.
type WatchedMovie struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	MovieID     int       `json:"movie_id"`
	MovieTitle  string    `json:"movie_title"`
	MoviePoster *string   `json:"movie_poster,omitempty"`
	Rating      *int      `json:"rating,omitempty"`
	Review      *string   `json:"review,omitempty"`
	WatchedAt   time.Time `json:"watched_at"`
}

// --- Request DTOs (bound from HTTP requests) ---

// WatchedRequest holds the data submitted to POST/PUT /api/user/watched-movies.
// The owning user is never read from the body -- it comes from the resolved
// session identity.
type WatchedRequest struct {
	MovieID    int     `json:"movieId"`
	Title      string  `json:"title"`
	PosterPath *string `json:"posterPath"`
	Rating     *int    `json:"rating"`
	Review     *string `json:"review"`
}

// --- Service Input DTOs (passed from handler to service) ---

// EntryInput is the validated input for creating or editing a record.
type EntryInput struct {
	UserID     string
	MovieID    int
	Title      string
	PosterPath *string
	Rating     *int
	Review     *string
}
