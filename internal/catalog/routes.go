package catalog

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up catalog proxy routes on the given API group.
// These routes are public; the catalog holds no per-user data.
func RegisterRoutes(api *echo.Group, h *Handler) {
	api.GET("/movies", h.List)
	api.GET("/movies/:id", h.Detail)
	api.GET("/movies/:id/reviews", h.Reviews)
	api.GET("/movies/:id/similar", h.Similar)
	api.GET("/movies/:id/providers", h.Providers)
	api.GET("/providers", h.AllProviders)
}
