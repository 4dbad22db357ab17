package watched

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up watched-movie routes on the given user group.
// The caller applies the session middleware to the group, so every handler
// here can assume a resolved identity.
func RegisterRoutes(user *echo.Group, h *Handler) {
	user.GET("/movie-review", h.MovieReview)
	user.GET("/watched-movies", h.List)
	user.POST("/watched-movies", h.Create)
	user.PUT("/watched-movies", h.Update)
	user.DELETE("/watched-movies", h.Delete)
}
