package profile

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up profile routes on the given user group. The caller
// applies the session middleware to the group.
func RegisterRoutes(user *echo.Group, h *Handler) {
	user.GET("/profile", h.Get)
	user.PUT("/profile", h.Update)
	user.GET("/streaming-providers", h.Providers)
	user.PUT("/streaming-providers", h.ReplaceProviders)
}
