package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/caffetrack/internal/client/migrations"
	"github.com/dmitrijs2005/caffetrack/internal/client/models"
	"github.com/dmitrijs2005/caffetrack/internal/dbx"
)

// RunMigrations applies the embedded store migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if necessary) the local store database and applies
// pending migrations. The returned handle is shared by all store handles
// of this process.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run store migrations: %w", err)
	}

	return db, nil
}

// SQLite is a Store backed by a sqlite key-value table. Handles sharing one
// database and bus behave like browser tabs sharing an origin: writes are
// visible to all, and every handle is notified of the others' mutations.
type SQLite struct {
	db     *sql.DB
	bus    *Bus
	origin string
}

var _ Store = (*SQLite)(nil)

// New returns a store handle bound to db and bus. Each handle gets a unique
// origin ID so the bus can tell its writes apart from other handles'.
func New(db *sql.DB, bus *Bus) *SQLite {
	return &SQLite{db: db, bus: bus, origin: uuid.NewString()}
}

func (s *SQLite) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLite) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLite) delete(ctx context.Context, q dbx.DBTX, key string) error {
	_, err := q.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLite) Token(ctx context.Context) (string, error) {
	v, err := s.get(ctx, s.db, KeyAccessToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLite) SetToken(ctx context.Context, tok string) error {
	if err := s.set(ctx, s.db, KeyAccessToken, []byte(tok)); err != nil {
		return err
	}
	s.bus.Publish(Change{Key: KeyAccessToken, NewValue: []byte(tok), Origin: s.origin})
	return nil
}

func (s *SQLite) ClearToken(ctx context.Context) error {
	if err := s.delete(ctx, s.db, KeyAccessToken); err != nil {
		return err
	}
	s.bus.Publish(Change{Key: KeyAccessToken, Origin: s.origin})
	return nil
}

func (s *SQLite) Profile(ctx context.Context) (*models.UserProfile, error) {
	v, err := s.get(ctx, s.db, KeyUserProfile)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	var u models.UserProfile
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, fmt.Errorf("failed to decode cached profile: %w", err)
	}
	return &u, nil
}

func (s *SQLite) SetProfile(ctx context.Context, u *models.UserProfile) error {
	v, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.set(ctx, s.db, KeyUserProfile, v); err != nil {
		return err
	}
	s.bus.Publish(Change{Key: KeyUserProfile, NewValue: v, Origin: s.origin})
	return nil
}

func (s *SQLite) DarkMode(ctx context.Context) (bool, error) {
	v, err := s.get(ctx, s.db, KeyDarkMode)
	if err != nil || v == nil {
		return false, err
	}
	var on bool
	if err := json.Unmarshal(v, &on); err != nil {
		return false, fmt.Errorf("failed to decode dark mode flag: %w", err)
	}
	return on, nil
}

func (s *SQLite) SetDarkMode(ctx context.Context, on bool) error {
	v, _ := json.Marshal(on)
	if err := s.set(ctx, s.db, KeyDarkMode, v); err != nil {
		return err
	}
	s.bus.Publish(Change{Key: KeyDarkMode, NewValue: v, Origin: s.origin})
	return nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.delete(ctx, tx, KeyAccessToken); err != nil {
			return err
		}
		return s.delete(ctx, tx, KeyUserProfile)
	})
	if err != nil {
		return err
	}
	s.bus.Publish(Change{Key: KeyAccessToken, Origin: s.origin})
	s.bus.Publish(Change{Key: KeyUserProfile, Origin: s.origin})
	return nil
}

func (s *SQLite) Subscribe() *Subscription {
	return s.bus.Subscribe(s.origin)
}
