// Package profile manages user profile data and the set of streaming
// providers a user prefers to watch on.
package profile

import (
	"time"
)

// Profile is a user's public-facing profile. StreamingProviders is a set:
// no duplicates, order not significant, replaced wholesale on every save.
type Profile struct {
	UserID             string    `json:"id"`
	Username           *string   `json:"username,omitempty"`
	FullName           *string   `json:"full_name,omitempty"`
	AvatarURL          *string   `json:"avatar_url,omitempty"`
	Bio                *string   `json:"bio,omitempty"`
	StreamingProviders []string  `json:"streaming_providers"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// --- Request DTOs (bound from HTTP requests) ---

// ProfileRequest holds the data submitted to PUT /api/user/profile.
type ProfileRequest struct {
	Username           *string  `json:"username"`
	FullName           *string  `json:"full_name"`
	AvatarURL          *string  `json:"avatar_url"`
	Bio                *string  `json:"bio"`
	StreamingProviders []string `json:"streaming_providers"`
}

// ProvidersRequest holds the data submitted to PUT /api/user/streaming-providers.
type ProvidersRequest struct {
	StreamingProviders []string `json:"streaming_providers"`
}
