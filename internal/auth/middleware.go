package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flicktrack/flicktrack/internal/apperror"
)

// contextKeyUserID is the Echo context key holding the resolved identity.
// Handlers read it via GetUserID -- they never re-derive identity from the
// cookie themselves.
const contextKeyUserID = "auth_user_id"

// loginPath is where unauthenticated browsers are sent.
const loginPath = "/login"

// homePath is the authenticated landing area. Logged-in users hitting a
// public page are redirected here unless they are already past it.
const homePath = "/movies"

// RequireSession returns middleware for the JSON API. It resolves the
// caller's identity from the session cookie and stores it in the request
// context; anonymous callers get a 401 and never reach the handler.
func RequireSession(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := readSessionCookie(c)
			userID := service.ResolveIdentity(token)
			if userID == "" {
				// Invalid or expired token -- clear the stale cookie so
				// the client stops replaying it.
				if token != "" {
					clearSessionCookie(c)
				}
				return apperror.NewUnauthorized("Invalid session token")
			}

			c.Set(contextKeyUserID, userID)
			return next(c)
		}
	}
}

// GetUserID retrieves the authenticated user's ID from the Echo context.
// Returns empty string if the request is not authenticated (middleware not
// applied).
func GetUserID(c echo.Context) string {
	id, ok := c.Get(contextKeyUserID).(string)
	if !ok {
		return ""
	}
	return id
}

// GuardConfig classifies page routes for the access guard. Paths are matched
// exactly. Anything in neither list is neutral and always passes through.
type GuardConfig struct {
	// Protected paths require a valid session.
	Protected []string

	// Public paths are the login/landing pages an authenticated user is
	// steered away from.
	Public []string
}

// PageGuard returns middleware gating page routes on session validity.
// It is stateless across requests and never mutates the session: it only
// reads the identity and emits a redirect or a pass-through.
//
//   - protected route, anonymous caller  -> redirect to the login page
//   - public route, authenticated caller -> redirect to the landing area,
//     unless the request already targets it
//   - everything else                    -> pass through unchanged
func PageGuard(service AuthService, cfg GuardConfig) echo.MiddlewareFunc {
	protected := make(map[string]bool, len(cfg.Protected))
	for _, p := range cfg.Protected {
		protected[p] = true
	}
	public := make(map[string]bool, len(cfg.Public))
	for _, p := range cfg.Public {
		public[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			userID := service.ResolveIdentity(readSessionCookie(c))

			if protected[path] && userID == "" {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			if public[path] && userID != "" && !strings.HasPrefix(path, homePath) {
				return c.Redirect(http.StatusSeeOther, homePath)
			}

			return next(c)
		}
	}
}
