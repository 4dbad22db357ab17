// Package auth handles user accounts, session issuance, and the per-request
// access guard for Flicktrack. Sessions are self-contained signed tokens
// carried in an HttpOnly cookie; no session state lives on the server.
package auth

import (
	"time"
)

// User represents a registered Flicktrack user. This is the domain model used
// throughout the application. Database scanning and JSON marshaling use this
// struct directly.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name"`
	PasswordHash string     `json:"-"` // Never expose in JSON responses.
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted to POST /api/auth/register.
type RegisterRequest struct {
	Email       string `json:"email" form:"email"`
	DisplayName string `json:"display_name" form:"display_name"`
	Password    string `json:"password" form:"password"`
}

// LoginRequest holds the data submitted to POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// CreateSessionRequest holds the data submitted to POST /api/auth.
// Kept for compatibility with frontends that authenticate against an
// external identity provider and only need a Flicktrack session minted.
type CreateSessionRequest struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the validated input for creating a new user.
type RegisterInput struct {
	Email       string
	DisplayName string
	Password    string
}

// LoginInput is the validated input for authenticating a user.
type LoginInput struct {
	Email    string
	Password string
}
