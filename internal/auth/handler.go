package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flicktrack/flicktrack/internal/apperror"
)

// Handler handles HTTP requests for authentication (register, login, session
// issuance, signout). Handlers are thin: they bind the request, call the
// service, and attach or clear the session cookie. No business logic lives
// here.
type Handler struct {
	service AuthService
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

// CreateSession mints a session for an externally authenticated identity
// (POST /api/auth with type=create-session). Credential checks for local
// accounts happen in Login/Register; this endpoint only wraps an already
// resolved userId in a signed cookie.
func (h *Handler) CreateSession(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if req.Type != "create-session" {
		return apperror.NewBadRequest("invalid request type")
	}
	if req.UserID == "" {
		return apperror.NewBadRequest("userId is required")
	}

	token, expiresAt, err := h.service.CreateSession(req.UserID)
	if err != nil {
		return err
	}

	setSessionCookie(c, token, expiresAt)
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// Register creates a new account and logs it in (POST /api/auth/register).
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	if msg := validateRegisterRequest(&req); msg != "" {
		return apperror.NewValidation(msg)
	}

	user, err := h.service.Register(c.Request().Context(), RegisterInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	token, expiresAt, err := h.service.CreateSession(user.ID)
	if err != nil {
		return err
	}

	setSessionCookie(c, token, expiresAt)
	return c.JSON(http.StatusCreated, map[string]any{"user": user})
}

// Login authenticates a local account and issues a fresh session
// (POST /api/auth/login).
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}
	if req.Email == "" || req.Password == "" {
		return apperror.NewBadRequest("email and password are required")
	}

	user, err := h.service.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	token, expiresAt, err := h.service.CreateSession(user.ID)
	if err != nil {
		return err
	}

	setSessionCookie(c, token, expiresAt)
	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

// Signout destroys the session by overwriting the cookie with an already
// expired one (POST /api/auth/signout). There is no server-side session
// state to delete; the credential simply stops being presented.
func (h *Handler) Signout(c echo.Context) error {
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// Session resolves the current caller's identity (GET /api/auth/session).
// Responds 200 with {"user": null} for anonymous callers -- this endpoint
// never errors, so frontends can poll it without special casing.
func (h *Handler) Session(c echo.Context) error {
	userID := h.service.ResolveIdentity(readSessionCookie(c))
	if userID == "" {
		return c.JSON(http.StatusOK, map[string]any{"user": nil})
	}

	user, err := h.service.UserByID(c.Request().Context(), userID)
	if err != nil {
		// A valid token for a since-deleted user still resolves to null
		// rather than an error.
		return c.JSON(http.StatusOK, map[string]any{"user": nil})
	}

	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

// validateRegisterRequest performs basic server-side validation on the
// registration payload. Returns an error message or empty string.
func validateRegisterRequest(req *RegisterRequest) string {
	if req.Email == "" {
		return "email is required"
	}
	if req.DisplayName == "" {
		return "display name is required"
	}
	if len(req.DisplayName) < 2 {
		return "display name must be at least 2 characters"
	}
	if len(req.DisplayName) > 100 {
		return "display name must be at most 100 characters"
	}
	if req.Password == "" {
		return "password is required"
	}
	if len(req.Password) < 8 {
		return "password must be at least 8 characters"
	}
	if len(req.Password) > 128 {
		return "password must be at most 128 characters"
	}
	return ""
}
