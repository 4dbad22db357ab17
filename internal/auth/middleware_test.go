package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

// newGuardTestService returns a service whose ResolveIdentity works against
// real signed tokens, plus a helper to mint a valid cookie value.
func newGuardTestService(t *testing.T) (AuthService, string) {
	t.Helper()
	svc := newTestAuthService(&mockUserRepo{})
	token, _, err := svc.CreateSession("user-123")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return svc, token
}

func doGuarded(t *testing.T, mw echo.MiddlewareFunc, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "page")
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec
}

// --- PageGuard Tests ---

func TestPageGuard_RedirectMatrix(t *testing.T) {
	svc, token := newGuardTestService(t)
	guard := PageGuard(svc, GuardConfig{
		Protected: []string{"/movies", "/profile"},
		Public:    []string{"/", "/login"},
	})

	tests := []struct {
		name         string
		path         string
		token        string
		wantStatus   int
		wantLocation string
	}{
		{"protected anonymous", "/movies", "", http.StatusSeeOther, "/login"},
		{"protected invalid token", "/profile", "garbage.token", http.StatusSeeOther, "/login"},
		{"protected authenticated", "/profile", token, http.StatusOK, ""},
		{"public anonymous", "/login", "", http.StatusOK, ""},
		{"public authenticated", "/login", token, http.StatusSeeOther, "/movies"},
		{"landing authenticated", "/", token, http.StatusSeeOther, "/movies"},
		{"neutral anonymous", "/about", "", http.StatusOK, ""},
		{"neutral authenticated", "/about", token, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGuarded(t, guard, tt.path, tt.token)
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Location"); got != tt.wantLocation {
				t.Errorf("expected Location %q, got %q", tt.wantLocation, got)
			}
		})
	}
}

func TestPageGuard_HomeItselfNotRedirected(t *testing.T) {
	svc, token := newGuardTestService(t)

	// /movies listed as public must not redirect an authenticated user to
	// itself in a loop.
	guard := PageGuard(svc, GuardConfig{Public: []string{"/movies"}})
	rec := doGuarded(t, guard, "/movies", token)
	if rec.Code != http.StatusOK {
		t.Errorf("expected pass-through for home path, got %d", rec.Code)
	}
}

// --- RequireSession Tests ---

func TestRequireSession_ValidToken(t *testing.T) {
	svc, token := newGuardTestService(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user/watched-movies", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUserID string
	handler := RequireSession(svc)(func(c echo.Context) error {
		seenUserID = GetUserID(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenUserID != "user-123" {
		t.Errorf("expected handler to see user-123, got %q", seenUserID)
	}
}

func TestRequireSession_MissingCookie(t *testing.T) {
	svc, _ := newGuardTestService(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user/watched-movies", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireSession(svc)(func(c echo.Context) error {
		t.Fatal("handler must not run for anonymous caller")
		return nil
	})

	assertAppError(t, handler(c), 401)
}

func TestRequireSession_InvalidTokenClearsCookie(t *testing.T) {
	svc, _ := newGuardTestService(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user/watched-movies", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale.garbage"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireSession(svc)(func(c echo.Context) error { return nil })
	assertAppError(t, handler(c), 401)

	// The stale cookie must be overwritten with an expired one.
	cookies := rec.Result().Cookies()
	var cleared *http.Cookie
	for _, ck := range cookies {
		if ck.Name == sessionCookieName {
			cleared = ck
		}
	}
	if cleared == nil {
		t.Fatal("expected a Set-Cookie clearing the session")
	}
	if cleared.Value != "" {
		t.Errorf("expected empty cookie value, got %q", cleared.Value)
	}
	if !cleared.Expires.Before(time.Now()) {
		t.Errorf("expected past expiry, got %v", cleared.Expires)
	}
}

func TestGetUserID_Unauthenticated(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if got := GetUserID(c); got != "" {
		t.Errorf("expected empty user ID, got %q", got)
	}
}
