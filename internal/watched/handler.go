package watched

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/flicktrack/flicktrack/internal/apperror"
	"github.com/flicktrack/flicktrack/internal/auth"
)

// Handler handles HTTP requests for watched-movie records. The owning
// identity is resolved once by the session middleware; handlers read it from
// the context and never accept a userId from the client.
type Handler struct {
	service WatchedService
}

// NewHandler creates a new watched-movie handler with the given service.
func NewHandler(service WatchedService) *Handler {
	return &Handler{service: service}
}

// MovieReview returns the caller's rating/review for a single movie
// (GET /api/user/movie-review?movieId=...).
func (h *Handler) MovieReview(c echo.Context) error {
	movieID, err := movieIDParam(c.QueryParam("movieId"))
	if err != nil {
		return err
	}

	wm, err := h.service.Get(c.Request().Context(), auth.GetUserID(c), movieID)
	if err != nil {
		return err
	}

	// Trimmed shape: callers on a movie page only need the user's own take.
	return c.JSON(http.StatusOK, map[string]any{
		"rating":    wm.Rating,
		"review":    wm.Review,
		"watchedAt": wm.WatchedAt,
	})
}

// List returns all of the caller's watched movies, newest first
// (GET /api/user/watched-movies).
func (h *Handler) List(c echo.Context) error {
	movies, err := h.service.ListForUser(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"watchedMovies": movies})
}

// Create marks a movie watched, or overwrites the existing record
// (POST /api/user/watched-movies).
func (h *Handler) Create(c echo.Context) error {
	input, err := bindEntry(c)
	if err != nil {
		return err
	}

	wm, err := h.service.MarkWatched(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{"watchedMovie": wm})
}

// Update edits an existing record in place (PUT /api/user/watched-movies).
// Responds 404 when the movie was never marked watched.
func (h *Handler) Update(c echo.Context) error {
	input, err := bindEntry(c)
	if err != nil {
		return err
	}

	wm, err := h.service.UpdateEntry(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"watchedMovie": wm})
}

// Delete un-marks a movie as watched
// (DELETE /api/user/watched-movies?movieId=...).
func (h *Handler) Delete(c echo.Context) error {
	movieID, err := movieIDParam(c.QueryParam("movieId"))
	if err != nil {
		return err
	}

	if err := h.service.Unmark(c.Request().Context(), auth.GetUserID(c), movieID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// bindEntry binds and normalizes the shared POST/PUT payload.
func bindEntry(c echo.Context) (EntryInput, error) {
	var req WatchedRequest
	if err := c.Bind(&req); err != nil {
		return EntryInput{}, apperror.NewBadRequest("invalid request")
	}

	return EntryInput{
		UserID:     auth.GetUserID(c),
		MovieID:    req.MovieID,
		Title:      req.Title,
		PosterPath: req.PosterPath,
		Rating:     req.Rating,
		Review:     req.Review,
	}, nil
}

// movieIDParam parses the movieId query parameter.
func movieIDParam(raw string) (int, error) {
	if raw == "" {
		return 0, apperror.NewBadRequest("movieId is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperror.NewBadRequest("movieId must be a positive integer")
	}
	return id, nil
}
