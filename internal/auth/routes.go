package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flicktrack/flicktrack/internal/middleware"
)

// RegisterRoutes sets up all auth-related routes on the given API group.
// Auth routes are public (no session required) -- the session middleware is
// exported separately for other packages to use on their route groups.
//
// POST endpoints are rate-limited to slow down brute-force and credential
// stuffing attacks: 10 attempts per IP per minute for login, 5 for register.
func RegisterRoutes(api *echo.Group, h *Handler) {
	api.POST("/auth", h.CreateSession, middleware.RateLimit(10, time.Minute))
	api.POST("/auth/register", h.Register, middleware.RateLimit(5, time.Minute))
	api.POST("/auth/login", h.Login, middleware.RateLimit(10, time.Minute))
	api.POST("/auth/signout", h.Signout)
	api.GET("/auth/session", h.Session)
}
