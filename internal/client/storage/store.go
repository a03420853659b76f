// Package storage implements the persistent local state shared by every
// session of one CaffeTrack installation: the access token, the cached user
// profile, and UI preferences. It plays the role the browser's localStorage
// played for the web client, including its cross-tab change notifications.
package storage

import (
	"context"

	"github.com/dmitrijs2005/caffetrack/internal/client/models"
)

// Canonical store keys. The access token lives under a single key
// project-wide; earlier revisions of the web client disagreed on the name,
// which is exactly the kind of drift a shared constant prevents.
const (
	KeyAccessToken = "AccessToken"
	KeyUserProfile = "userProfile"
	KeyDarkMode    = "darkMode"
)

// Store is a handle onto the shared local state.
//
// Mutations are immediately visible to readers of the same database;
// other handles observe them asynchronously through Subscribe. A handle
// never receives notifications for its own writes, mirroring the browser
// storage-event model.
//
// The store performs no validation of the token it holds — garbage in,
// garbage out; validation belongs to the token codec.
type Store interface {
	// Token returns the stored access token, or "" when absent.
	Token(ctx context.Context) (string, error)

	SetToken(ctx context.Context, tok string) error
	ClearToken(ctx context.Context) error

	// Profile returns the cached user profile, or nil when absent.
	Profile(ctx context.Context) (*models.UserProfile, error)

	SetProfile(ctx context.Context, u *models.UserProfile) error

	DarkMode(ctx context.Context) (bool, error)
	SetDarkMode(ctx context.Context, on bool) error

	// Clear removes the access token and the cached profile in a single
	// transaction. Calling it on an already-empty store is a no-op.
	Clear(ctx context.Context) error

	// Subscribe returns a subscription delivering changes made through
	// other handles of the same database.
	Subscribe() *Subscription
}
