package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flicktrack/flicktrack/internal/apperror"
)

// AuthService defines the business logic contract for authentication and
// session issuance. Handlers call these methods -- they never touch the
// repository or the token codec directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (*User, error)
	UserByID(ctx context.Context, id string) (*User, error)

	// CreateSession issues a fresh signed credential valid for the
	// configured TTL. Logging in again issues a new credential; an
	// existing one is never extended.
	CreateSession(userID string) (token string, expiresAt time.Time, err error)

	// ResolveIdentity maps a raw token to a user ID, or to the empty
	// string (anonymous) on any absence or verification failure. It never
	// returns an error: every protected handler depends on it degrading
	// gracefully to "no user."
	ResolveIdentity(token string) string
}

// authService implements AuthService with argon2id hashing and HMAC-signed
// stateless session tokens.
type authService struct {
	repo       UserRepository
	codec      *Codec
	sessionTTL time.Duration
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, codec *Codec, sessionTTL time.Duration) AuthService {
	return &authService{
		repo:       repo,
		codec:      codec,
		sessionTTL: sessionTTL,
	}
}

// Register creates a new user account. It validates uniqueness, hashes the
// password with argon2id, and persists the user.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Check if email is already taken before doing expensive hashing.
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking email: %w", err))
	}
	if exists {
		return nil, apperror.NewConflict("an account with this email already exists")
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login authenticates a user by email and password. Unknown email and wrong
// password produce the same generic 401 so the endpoint can't be used to
// probe which addresses have accounts.
func (s *authService) Login(ctx context.Context, input LoginInput) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return nil, apperror.NewUnauthorized("invalid email or password")
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !verifyPassword(input.Password, user.PasswordHash) {
		return nil, apperror.NewUnauthorized("invalid email or password")
	}

	// Update the user's last login timestamp (fire-and-forget, non-critical).
	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("failed to update last login",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// UserByID fetches a user for identity display (GET /api/auth/session).
func (s *authService) UserByID(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateSession issues a signed credential expiring sessionTTL from now.
func (s *authService) CreateSession(userID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.sessionTTL)
	token, err := s.codec.Issue(userID, expiresAt)
	if err != nil {
		return "", time.Time{}, apperror.NewInternal(fmt.Errorf("issuing session token: %w", err))
	}
	return token, expiresAt, nil
}

// ResolveIdentity verifies the token and returns the embedded user ID.
// Missing, malformed, tampered, and expired tokens all resolve to anonymous
// (empty string); the cause is logged at debug level for diagnostics but is
// never surfaced to trust decisions.
func (s *authService) ResolveIdentity(token string) string {
	if token == "" {
		return ""
	}
	claims, err := s.codec.Verify(token)
	if err != nil {
		slog.Debug("session token rejected", slog.Any("error", err))
		return ""
	}
	return claims.UserID
}
