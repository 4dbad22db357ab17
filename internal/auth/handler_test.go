package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flicktrack/flicktrack/internal/apperror"
)

// mockAuthService implements AuthService for handler tests.
type mockAuthService struct {
	registerFn        func(ctx context.Context, input RegisterInput) (*User, error)
	loginFn           func(ctx context.Context, input LoginInput) (*User, error)
	userByIDFn        func(ctx context.Context, id string) (*User, error)
	createSessionFn   func(userID string) (string, time.Time, error)
	resolveIdentityFn func(token string) string
}

func (m *mockAuthService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, input)
	}
	return &User{ID: "user-123", Email: input.Email}, nil
}

func (m *mockAuthService) Login(ctx context.Context, input LoginInput) (*User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, input)
	}
	return &User{ID: "user-123", Email: input.Email}, nil
}

func (m *mockAuthService) UserByID(ctx context.Context, id string) (*User, error) {
	if m.userByIDFn != nil {
		return m.userByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockAuthService) CreateSession(userID string) (string, time.Time, error) {
	if m.createSessionFn != nil {
		return m.createSessionFn(userID)
	}
	return "signed-token", time.Now().Add(time.Hour), nil
}

func (m *mockAuthService) ResolveIdentity(token string) string {
	if m.resolveIdentityFn != nil {
		return m.resolveIdentityFn(token)
	}
	return ""
}

func postJSON(t *testing.T, handler echo.HandlerFunc, path, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, handler(e.NewContext(req, rec))
}

// --- CreateSession Tests ---

func TestCreateSession_Success(t *testing.T) {
	var sessionUserID string
	h := NewHandler(&mockAuthService{
		createSessionFn: func(userID string) (string, time.Time, error) {
			sessionUserID = userID
			return "signed-token", time.Now().Add(time.Hour), nil
		},
	})

	rec, err := postJSON(t, h.CreateSession, "/api/auth",
		`{"type":"create-session","userId":"ext-user-9"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if sessionUserID != "ext-user-9" {
		t.Errorf("expected session for ext-user-9, got %q", sessionUserID)
	}

	ck := sessionCookieFrom(t, rec)
	if ck.Value != "signed-token" {
		t.Errorf("expected session cookie with token, got %q", ck.Value)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body["success"])
	}
}

func TestCreateSession_InvalidType(t *testing.T) {
	h := NewHandler(&mockAuthService{})
	_, err := postJSON(t, h.CreateSession, "/api/auth",
		`{"type":"destroy-session","userId":"ext-user-9"}`)
	assertAppError(t, err, 400)
}

func TestCreateSession_MissingUserID(t *testing.T) {
	h := NewHandler(&mockAuthService{})
	_, err := postJSON(t, h.CreateSession, "/api/auth", `{"type":"create-session"}`)
	assertAppError(t, err, 400)
}

// --- Register Handler Tests ---

func TestRegisterHandler_SetsCookie(t *testing.T) {
	h := NewHandler(&mockAuthService{})

	rec, err := postJSON(t, h.Register, "/api/auth/register",
		`{"email":"alice@example.com","display_name":"Alice","password":"secure-password-123"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	sessionCookieFrom(t, rec)
}

func TestRegisterHandler_ValidationFailures(t *testing.T) {
	h := NewHandler(&mockAuthService{})

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"display_name":"Alice","password":"secure-password-123"}`},
		{"missing display name", `{"email":"a@b.com","password":"secure-password-123"}`},
		{"short password", `{"email":"a@b.com","display_name":"Alice","password":"short"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := postJSON(t, h.Register, "/api/auth/register", tt.body)
			assertAppError(t, err, 422)
		})
	}
}

// --- Session Handler Tests ---

func TestSessionHandler_Anonymous(t *testing.T) {
	h := NewHandler(&mockAuthService{})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/session", nil), rec)

	if err := h.Session(c); err != nil {
		t.Fatalf("session endpoint must never error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["user"] != nil {
		t.Errorf("expected user=null, got %v", body["user"])
	}
}

func TestSessionHandler_Authenticated(t *testing.T) {
	h := NewHandler(&mockAuthService{
		resolveIdentityFn: func(token string) string {
			if token == "valid-token" {
				return "user-123"
			}
			return ""
		},
		userByIDFn: func(ctx context.Context, id string) (*User, error) {
			return &User{ID: id, Email: "alice@example.com"}, nil
		},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "valid-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Session(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.User == nil || body.User.ID != "user-123" {
		t.Errorf("expected user-123, got %+v", body.User)
	}
}

func TestSessionHandler_DeletedUserResolvesToNull(t *testing.T) {
	h := NewHandler(&mockAuthService{
		resolveIdentityFn: func(token string) string { return "ghost-user" },
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "valid-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Session(c); err != nil {
		t.Fatalf("session endpoint must never error: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["user"] != nil {
		t.Errorf("expected user=null for deleted user, got %v", body["user"])
	}
}

// --- Signout Tests ---

func TestSignout_ClearsCookie(t *testing.T) {
	h := NewHandler(&mockAuthService{})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil), rec)

	if err := h.Signout(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	ck := sessionCookieFrom(t, rec)
	if ck.Value != "" || ck.MaxAge != -1 {
		t.Errorf("expected cleared cookie, got value=%q maxage=%d", ck.Value, ck.MaxAge)
	}
}
