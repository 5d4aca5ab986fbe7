// Package session persists the current-user record between runs. It is the
// terminal-app analog of the browser's single local-storage key: whatever is
// saved here is adopted verbatim at startup and consulted by the navigation
// guard as a recovery path against in-memory state loss.
package session

import (
	"context"

	"github.com/jlin2026/campusmarket/internal/models"
)

// Provider abstracts the session storage so a token-based scheme could be
// swapped in without touching store or view code.
type Provider interface {
	// Load returns the persisted user, or (nil, nil) when no session exists.
	Load(ctx context.Context) (*models.User, error)

	// Save replaces the persisted user.
	Save(ctx context.Context, u *models.User) error

	// Clear wipes the session. Clearing an absent session is not an error.
	Clear(ctx context.Context) error
}
