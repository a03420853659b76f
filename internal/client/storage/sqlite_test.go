package storage

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var dbSeq int

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", dbSeq)
	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLite_TokenRoundtrip(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := New(db, NewBus())

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, s.SetToken(ctx, "abc.def.ghi"))

	tok, err = s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", tok)

	// Last assignment wins.
	require.NoError(t, s.SetToken(ctx, "new.token.value"))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "new.token.value", tok)

	require.NoError(t, s.ClearToken(ctx))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestSQLite_ProfileRoundtrip(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := New(db, NewBus())

	p, err := s.Profile(ctx)
	require.NoError(t, err)
	require.Nil(t, p)

	want := testProfile()
	require.NoError(t, s.SetProfile(ctx, want))

	p, err = s.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, want, p)
}

func TestSQLite_DarkMode(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := New(db, NewBus())

	on, err := s.DarkMode(ctx)
	require.NoError(t, err)
	require.False(t, on, "dark mode defaults to off")

	require.NoError(t, s.SetDarkMode(ctx, true))
	on, err = s.DarkMode(ctx)
	require.NoError(t, err)
	require.True(t, on)
}

func TestSQLite_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := New(db, NewBus())

	require.NoError(t, s.SetToken(ctx, "tok"))
	require.NoError(t, s.SetProfile(ctx, testProfile()))

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx), "clearing an empty store must succeed")

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	p, err := s.Profile(ctx)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestSQLite_ClearKeepsPreferences(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := New(db, NewBus())

	require.NoError(t, s.SetDarkMode(ctx, true))
	require.NoError(t, s.SetToken(ctx, "tok"))
	require.NoError(t, s.Clear(ctx))

	on, err := s.DarkMode(ctx)
	require.NoError(t, err)
	require.True(t, on, "logout must not reset UI preferences")
}

func TestSQLite_CrossHandleNotifications(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	bus := NewBus()
	a := New(db, bus)
	b := New(db, bus)

	subA := a.Subscribe()
	defer subA.Close()
	subB := b.Subscribe()
	defer subB.Close()

	require.NoError(t, a.SetToken(ctx, "tok"))

	// The other handle observes the change...
	c := <-subB.C
	require.Equal(t, KeyAccessToken, c.Key)
	require.Equal(t, []byte("tok"), c.NewValue)

	// ...and the writes are visible through it synchronously.
	tok, err := b.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok", tok)

	// The writing handle is spared its own change.
	select {
	case c := <-subA.C:
		t.Fatalf("writer received its own change: %+v", c)
	default:
	}
}

func TestSQLite_ClearNotifiesDeletions(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	bus := NewBus()
	a := New(db, bus)
	b := New(db, bus)

	require.NoError(t, a.SetToken(ctx, "tok"))
	sub := b.Subscribe()
	defer sub.Close()

	require.NoError(t, a.Clear(ctx))

	c := <-sub.C
	require.Equal(t, KeyAccessToken, c.Key)
	require.Nil(t, c.NewValue, "deletion is signalled with a nil value")
}
