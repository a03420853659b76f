package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/caffetrack/internal/client/api"
	"github.com/dmitrijs2005/caffetrack/internal/client/models"
	"github.com/dmitrijs2005/caffetrack/internal/client/session"
	"github.com/dmitrijs2005/caffetrack/internal/common"
)

// stubInputs replaces the interactive input seams. Text prompts are answered
// from the answers queue in order; the password prompt always returns pw.
func stubInputs(t *testing.T, answers []string, pw []byte) {
	t.Helper()
	origST, origGP, origPrint := getSimpleText, getPassword, printlnFn

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		require.Less(t, i, len(answers), "more prompts than stubbed answers")
		a := answers[i]
		i++
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), pw...), nil }
	printlnFn = func(...any) (int, error) { return 0, nil }

	t.Cleanup(func() {
		getSimpleText, getPassword, printlnFn = origST, origGP, origPrint
	})
}

type fakeSession struct {
	loginEmail string
	loginPass  string
	loginErr   error

	registerReq api.RegisterRequest
	registerErr error

	logoutCalled bool

	refreshCalled bool
	refreshErr    error

	user      *models.UserProfile
	fetchErr  error
	patch     models.ProfilePatch
	updateErr error

	state session.State
	auto  bool
}

var _ sessionService = (*fakeSession)(nil)

func (f *fakeSession) Initialize(context.Context) error { return nil }
func (f *fakeSession) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	return f.loginErr
}
func (f *fakeSession) Register(_ context.Context, req api.RegisterRequest) error {
	f.registerReq = req
	return f.registerErr
}
func (f *fakeSession) Logout(context.Context) error {
	f.logoutCalled = true
	return nil
}
func (f *fakeSession) Refresh(context.Context) (string, error) {
	f.refreshCalled = true
	return "", f.refreshErr
}
func (f *fakeSession) FetchUser(context.Context) (*models.UserProfile, error) {
	return f.user, f.fetchErr
}
func (f *fakeSession) UpdateProfile(_ context.Context, patch models.ProfilePatch) (*models.UserProfile, error) {
	f.patch = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.user, nil
}
func (f *fakeSession) Snapshot() session.State { return f.state }
func (f *fakeSession) EnableAutoRefresh()      { f.auto = true }
func (f *fakeSession) DisableAutoRefresh()     { f.auto = false }
func (f *fakeSession) AutoRefreshEnabled() bool { return f.auto }
func (f *fakeSession) Close()                  {}

func TestRegister_CollectsAllFields(t *testing.T) {
	f := &fakeSession{}
	a := &App{session: f}

	stubInputs(t, []string{"kim@example.com", "Kim", "62.5"}, []byte("secret1"))

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, api.RegisterRequest{
		Email:    "kim@example.com",
		Password: "secret1",
		Name:     "Kim",
		Weight:   62.5,
	}, f.registerReq)
}

func TestRegister_BadWeight(t *testing.T) {
	f := &fakeSession{}
	a := &App{session: f}

	stubInputs(t, []string{"kim@example.com", "Kim", "heavy"}, []byte("secret1"))

	require.Error(t, a.Register(context.Background()))
	assert.Empty(t, f.registerReq.Email, "nothing must be sent on bad input")
}

func TestLogin_Success(t *testing.T) {
	f := &fakeSession{}
	a := &App{session: f}

	stubInputs(t, []string{"kim@example.com"}, []byte("secret1"))

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "kim@example.com", f.loginEmail)
	assert.Equal(t, "secret1", f.loginPass)
}

func TestLogin_BadCredentials(t *testing.T) {
	f := &fakeSession{loginErr: common.ErrUnauthorized}
	a := &App{session: f}

	stubInputs(t, []string{"kim@example.com"}, []byte("wrong"))

	err := a.Login(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	f := &fakeSession{}
	a := &App{session: f}

	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, f.logoutCalled)
}
