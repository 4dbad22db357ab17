package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/flicktrack/flicktrack/internal/apperror"
)

// ProfileRepository defines the data access contract for profiles.
// The streaming provider set is stored as a JSON column; (un)marshaling
// stays inside this implementation.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*Profile, error)

	// Upsert creates or overwrites the profile row for the user.
	Upsert(ctx context.Context, p *Profile) error

	// ReplaceProviders overwrites only the provider set, creating the
	// profile row if the user has never saved one.
	ReplaceProviders(ctx context.Context, userID string, providers []string) error
}

// profileRepository implements ProfileRepository on MariaDB.
type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a profile repository backed by the given DB pool.
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Get retrieves a profile by user ID.
// Returns apperror.NotFound if the user has never saved a profile.
func (r *profileRepository) Get(ctx context.Context, userID string) (*Profile, error) {
	query := `SELECT user_id, username, full_name, avatar_url, bio, streaming_providers,
	                 created_at, updated_at
	          FROM profiles WHERE user_id = ?`

	p := &Profile{}
	var providersJSON []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.Username,
		&p.FullName,
		&p.AvatarURL,
		&p.Bio,
		&providersJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	p.StreamingProviders = make([]string, 0)
	if len(providersJSON) > 0 {
		if err := json.Unmarshal(providersJSON, &p.StreamingProviders); err != nil {
			return nil, fmt.Errorf("unmarshaling streaming providers: %w", err)
		}
	}

	return p, nil
}

// Upsert creates or overwrites the profile row in one atomic statement.
func (r *profileRepository) Upsert(ctx context.Context, p *Profile) error {
	providersJSON, err := json.Marshal(p.StreamingProviders)
	if err != nil {
		return fmt.Errorf("marshaling streaming providers: %w", err)
	}

	query := `INSERT INTO profiles (user_id, username, full_name, avatar_url, bio, streaming_providers)
	          VALUES (?, ?, ?, ?, ?, ?)
	          ON DUPLICATE KEY UPDATE
	              username = VALUES(username),
	              full_name = VALUES(full_name),
	              avatar_url = VALUES(avatar_url),
	              bio = VALUES(bio),
	              streaming_providers = VALUES(streaming_providers)`

	if _, err := r.db.ExecContext(ctx, query,
		p.UserID, p.Username, p.FullName, p.AvatarURL, p.Bio, providersJSON,
	); err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}

	return nil
}

// ReplaceProviders overwrites only the provider set. Last writer wins; the
// set is never diffed incrementally.
func (r *profileRepository) ReplaceProviders(ctx context.Context, userID string, providers []string) error {
	providersJSON, err := json.Marshal(providers)
	if err != nil {
		return fmt.Errorf("marshaling streaming providers: %w", err)
	}

	query := `INSERT INTO profiles (user_id, streaming_providers)
	          VALUES (?, ?)
	          ON DUPLICATE KEY UPDATE streaming_providers = VALUES(streaming_providers)`

	if _, err := r.db.ExecContext(ctx, query, userID, providersJSON); err != nil {
		return fmt.Errorf("replacing streaming providers: %w", err)
	}

	return nil
}
