package profile

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flicktrack/flicktrack/internal/apperror"
	"github.com/flicktrack/flicktrack/internal/auth"
)

// Handler handles HTTP requests for profiles and streaming providers.
type Handler struct {
	service ProfileService
}

// NewHandler creates a new profile handler with the given service.
func NewHandler(service ProfileService) *Handler {
	return &Handler{service: service}
}

// Get returns the caller's profile (GET /api/user/profile).
func (h *Handler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"data": p})
}

// Update creates or replaces the caller's profile (PUT /api/user/profile).
func (h *Handler) Update(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	p, err := h.service.Save(c.Request().Context(), auth.GetUserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"data": p})
}

// Providers returns the caller's streaming provider set
// (GET /api/user/streaming-providers).
func (h *Handler) Providers(c echo.Context) error {
	providers, err := h.service.Providers(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"streaming_providers": providers})
}

// ReplaceProviders replaces the caller's provider set wholesale
// (PUT /api/user/streaming-providers).
func (h *Handler) ReplaceProviders(c echo.Context) error {
	var req ProvidersRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	providers, err := h.service.ReplaceProviders(c.Request().Context(), auth.GetUserID(c), req.StreamingProviders)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"streaming_providers": providers})
}
