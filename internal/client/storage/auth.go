package storage

import (
	"context"
	"time"
)

// AuthStorage defines interface for the persisted credential slot.
// The slot holds at most one credential; saving overwrites it.
type AuthStorage interface {
	// SaveAuth stores authentication data, replacing any previous value
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data.
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout).
	// Deleting an empty slot is not an error.
	DeleteAuth(ctx context.Context) error
}

// AuthData represents the credential persisted between sessions.
// User identity is not stored: it is fetched from the server on reload.
type AuthData struct {
	SavedAt      time.Time `json:"saved_at"`
	BaseURL      string    `json:"base_url"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
}
