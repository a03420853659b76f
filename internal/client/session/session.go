// Package session owns the client-side authentication lifecycle: the access
// token, the derived session state, proactive and reactive token refresh,
// and synchronization with concurrent sessions sharing the same local store.
//
// All session state lives in a single Manager and is mutated only through
// its entry points (Login, Logout, Register, Refresh, FetchUser,
// UpdateProfile, Initialize); nothing else touches it.
package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/caffetrack/internal/client/api"
	"github.com/dmitrijs2005/caffetrack/internal/client/models"
	"github.com/dmitrijs2005/caffetrack/internal/client/storage"
	"github.com/dmitrijs2005/caffetrack/internal/client/token"
	"github.com/dmitrijs2005/caffetrack/internal/logging"
)

const (
	defaultRefreshBuffer        = 5 * time.Minute
	defaultAutoRefreshThreshold = 60 * time.Second
	defaultAutoRefreshTick      = time.Second
)

// State is the observable session state. It is derived from the store and
// recomputed on every mutation; between a server-side invalidation and the
// next failed request it may be optimistically stale.
//
// Invariant after any entry point returns: Authenticated is true exactly
// when the store holds a token that decoded successfully.
type State struct {
	Authenticated bool
	User          *models.UserProfile
	Loading       bool
}

// Manager coordinates the session lifecycle for one client instance ("tab").
// It is safe for concurrent use.
type Manager struct {
	api   api.Client
	store storage.Store
	log   logging.Logger
	now   func() time.Time

	refreshBuffer time.Duration
	autoThreshold time.Duration
	autoTick      time.Duration

	mu    sync.RWMutex
	state State

	sf singleflight.Group

	sub       *storage.Subscription
	watchDone chan struct{}

	autoMu   sync.Mutex
	autoStop chan struct{}
	autoDone chan struct{}
}

// Options tune a Manager. Zero values fall back to defaults.
type Options struct {
	// RefreshBuffer is how close to expiry a token may get before an
	// authenticated request refreshes it up front. Default 5 minutes.
	RefreshBuffer time.Duration

	// AutoRefreshThreshold is the remaining lifetime at which the
	// auto-refresh scheduler fires. Default 60 seconds.
	AutoRefreshThreshold time.Duration

	// AutoRefreshTick is the scheduler countdown resolution. Default 1s.
	AutoRefreshTick time.Duration

	// Now is a clock override for tests.
	Now func() time.Time
}

// NewManager builds a Manager and starts watching the store for changes
// made by other sessions. Callers must Close it when done.
func NewManager(client api.Client, store storage.Store, log logging.Logger, opts Options) *Manager {
	if opts.RefreshBuffer == 0 {
		opts.RefreshBuffer = defaultRefreshBuffer
	}
	if opts.AutoRefreshThreshold == 0 {
		opts.AutoRefreshThreshold = defaultAutoRefreshThreshold
	}
	if opts.AutoRefreshTick == 0 {
		opts.AutoRefreshTick = defaultAutoRefreshTick
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := &Manager{
		api:           client,
		store:         store,
		log:           log,
		now:           opts.Now,
		refreshBuffer: opts.RefreshBuffer,
		autoThreshold: opts.AutoRefreshThreshold,
		autoTick:      opts.AutoRefreshTick,
		sub:           store.Subscribe(),
		watchDone:     make(chan struct{}),
	}
	go m.watch()
	return m
}

// Close stops the auto-refresh scheduler and detaches the store watcher.
func (m *Manager) Close() {
	m.DisableAutoRefresh()
	m.sub.Close()
	<-m.watchDone
}

// Snapshot returns a copy of the current session state. The User pointer is
// shared; treat the profile as read-only.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) setLoading(on bool) {
	m.mu.Lock()
	m.state.Loading = on
	m.mu.Unlock()
}

// clearLocal drops the token and cached profile and marks the session
// unauthenticated. Used whenever the session is known or presumed over.
func (m *Manager) clearLocal(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear local session state", "error", err)
	}
	m.mu.Lock()
	m.state.Authenticated = false
	m.state.User = nil
	m.mu.Unlock()
}

func (m *Manager) failSafe(ctx context.Context, err error) error {
	m.clearLocal(ctx)
	return err
}

// Initialize restores the session after a restart: it decodes the stored
// token, refreshes it if expired, and loads the user profile. Any failure
// leaves the manager cleanly signed out — never in a half-initialized state.
func (m *Manager) Initialize(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	tok, err := m.store.Token(ctx)
	if err != nil {
		return m.failSafe(ctx, err)
	}
	if tok == "" {
		return nil
	}

	info, err := token.Decode(tok, m.now())
	if err != nil {
		// Stored garbage is not a session.
		m.log.Warn(ctx, "stored token is malformed, clearing it", "error", err)
		if cerr := m.store.ClearToken(ctx); cerr != nil {
			return m.failSafe(ctx, cerr)
		}
		return nil
	}

	if info.Expired {
		if _, err := m.Refresh(ctx); err != nil {
			// Refresh already cleared local state.
			m.log.Info(ctx, "could not restore session, staying signed out", "reason", err)
			return nil
		}
	}

	if _, err := m.FetchUser(ctx); err != nil {
		return m.failSafe(ctx, err)
	}
	return nil
}

// Login authenticates with the server and stores the issued access token.
// The refresh credential is set by the server as an httpOnly cookie and
// handled entirely by the transport.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.setLoading(true)
	defer m.setLoading(false)

	tok, user, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := m.store.SetToken(ctx, tok); err != nil {
		return err
	}
	if user != nil {
		if err := m.store.SetProfile(ctx, user); err != nil {
			m.log.Error(ctx, "failed to cache user profile", "error", err)
		}
	}

	m.mu.Lock()
	m.state.Authenticated = true
	if user != nil {
		m.state.User = user
	}
	m.mu.Unlock()

	m.log.Info(ctx, "logged in", "email", email)
	return nil
}

// Register creates a new account. It does not log the user in; the server
// issues no token on signup.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) error {
	m.setLoading(true)
	defer m.setLoading(false)
	return m.api.Register(ctx, req)
}

// Logout revokes the session server-side and clears local state. Local
// cleanup happens regardless of what the server answers: a failed logout
// call still ends the local session.
func (m *Manager) Logout(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	tok, err := m.store.Token(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to read token during logout", "error", err)
	}
	if tok != "" {
		if err := m.api.Logout(ctx, tok); err != nil {
			m.log.Warn(ctx, "server logout failed, clearing local state anyway", "error", err)
		}
	}

	m.clearLocal(ctx)
	m.log.Info(ctx, "logged out")
	return nil
}
