package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// sessionCookieName is the HTTP cookie used to store the session token.
// The cookie is the only transport for the credential: tokens never appear
// in URLs, response bodies, or anywhere a page script could read them.
const sessionCookieName = "session"

// setSessionCookie attaches the session token to the response. The cookie is
// HttpOnly (JS can't read it), Secure (TLS-only), SameSite=Lax (sent on
// top-level navigation but not cross-site subrequests), and expires exactly
// when the credential inside it does.
func setSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// readSessionCookie extracts the session token from the request, or returns
// an empty string when the cookie is absent.
func readSessionCookie(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// clearSessionCookie overwrites the session cookie with an empty value and
// an expiry in the past, forcing immediate client-side deletion.
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
