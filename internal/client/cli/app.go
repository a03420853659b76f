package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/caffetrack/internal/client/api"
	"github.com/dmitrijs2005/caffetrack/internal/client/config"
	"github.com/dmitrijs2005/caffetrack/internal/client/models"
	"github.com/dmitrijs2005/caffetrack/internal/client/session"
	"github.com/dmitrijs2005/caffetrack/internal/client/storage"
	"github.com/dmitrijs2005/caffetrack/internal/logging"
)

// sessionService is the slice of the session manager the CLI handlers use.
// The concrete session.Manager satisfies it; tests can provide a stub.
type sessionService interface {
	Initialize(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req api.RegisterRequest) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (string, error)
	FetchUser(ctx context.Context) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.UserProfile, error)
	Snapshot() session.State
	EnableAutoRefresh()
	DisableAutoRefresh()
	AutoRefreshEnabled() bool
	Close()
}

type App struct {
	config  *config.Config
	session sessionService
	store   storage.Store
	db      *sql.DB
	log     logging.Logger
	reader  *bufio.Reader
}

// NewApp wires the local store, the HTTP API client, and the session manager
// into a runnable CLI application.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	store := storage.New(db, storage.NewBus())

	apiClient, err := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	mgr := session.NewManager(apiClient, store, log, session.Options{
		RefreshBuffer:        c.RefreshBuffer,
		AutoRefreshThreshold: c.AutoRefreshThreshold,
	})

	return &App{
		config:  c,
		session: mgr,
		store:   store,
		db:      db,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the previous session (if any) and hands control to the REPL.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	if err := a.session.Initialize(ctx); err != nil {
		// Initialization failures leave the session cleanly signed out; the
		// REPL is still usable for a fresh login.
		a.log.Warn(ctx, "session restore failed", "error", err)
	}

	if a.config.AutoRefreshEnabled {
		a.session.EnableAutoRefresh()
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
	return nil
}

func (a *App) close() {
	a.session.Close()
	if err := a.db.Close(); err != nil {
		a.log.Error(context.Background(), "failed to close local store", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated
}

// getStatus renders the prompt suffix: the signed-in email plus an asterisk
// while the auto-refresh scheduler is running.
func (a *App) getStatus() string {
	st := a.session.Snapshot()
	s := ""
	if st.Authenticated {
		s = "authenticated"
		if st.User != nil {
			s = st.User.Email
		}
	}
	if a.session.AutoRefreshEnabled() {
		s += "*"
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}
