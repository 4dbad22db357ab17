package catalog

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/flicktrack/flicktrack/internal/apperror"
)

// Handler handles HTTP requests for the movie catalog proxy.
type Handler struct {
	catalog Catalog
}

// NewHandler creates a new catalog handler.
func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// List returns one page of a catalog list (GET /api/movies?type=&page=).
func (h *Handler) List(c echo.Context) error {
	kind := ListKind(c.QueryParam("type"))
	if kind == "" {
		kind = ListDiscover
	}

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return apperror.NewBadRequest("page must be a positive integer")
		}
		page = parsed
	}

	movies, err := h.catalog.MovieList(c.Request().Context(), kind, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"movies": movies})
}

// Detail returns full movie details (GET /api/movies/:id).
func (h *Handler) Detail(c echo.Context) error {
	id, err := movieIDParam(c)
	if err != nil {
		return err
	}

	detail, err := h.catalog.Movie(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Reviews returns catalog reviews for a movie (GET /api/movies/:id/reviews).
func (h *Handler) Reviews(c echo.Context) error {
	id, err := movieIDParam(c)
	if err != nil {
		return err
	}

	reviews, err := h.catalog.Reviews(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"reviews": reviews})
}

// Similar returns recommendations for a movie (GET /api/movies/:id/similar).
func (h *Handler) Similar(c echo.Context) error {
	id, err := movieIDParam(c)
	if err != nil {
		return err
	}

	movies, err := h.catalog.Similar(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"movies": movies})
}

// Providers returns the streaming providers offering a movie
// (GET /api/movies/:id/providers).
func (h *Handler) Providers(c echo.Context) error {
	id, err := movieIDParam(c)
	if err != nil {
		return err
	}

	providers, err := h.catalog.WatchProviders(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"providers": providers})
}

// AllProviders returns every provider in the region (GET /api/providers).
func (h *Handler) AllProviders(c echo.Context) error {
	providers, err := h.catalog.AllProviders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"providers": providers})
}

// movieIDParam parses the :id path parameter.
func movieIDParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, apperror.NewBadRequest("movie id must be a positive integer")
	}
	return id, nil
}
