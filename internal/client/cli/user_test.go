package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/caffetrack/internal/client/models"
	"github.com/dmitrijs2005/caffetrack/internal/common"
)

// stubOptionalInputs answers the profile editor prompts in order. An empty
// string keeps the field unchanged, matching the real prompt contract.
func stubOptionalInputs(t *testing.T, answers []string) {
	t.Helper()
	origST, origPrint := getSimpleText, printlnFn

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		require.Less(t, i, len(answers), "more prompts than stubbed answers")
		a := answers[i]
		i++
		return a, nil
	}
	printlnFn = func(...any) (int, error) { return 0, nil }

	t.Cleanup(func() {
		getSimpleText, printlnFn = origST, origPrint
	})
}

func TestInfo_PrintsProfile(t *testing.T) {
	f := &fakeSession{user: &models.UserProfile{
		ID: 7, Email: "kim@example.com", Name: "Kim", Weight: 62.5, DailyCaffeineLimit: 400,
	}}
	a := &App{session: f}

	var lines int
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { lines++; return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	require.NoError(t, a.Info(context.Background()))
	assert.Equal(t, 4, lines)
}

func TestInfo_SessionExpired(t *testing.T) {
	f := &fakeSession{fetchErr: common.ErrAuthExpired}
	a := &App{session: f}

	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	err := a.Info(context.Background())
	require.ErrorIs(t, err, common.ErrAuthExpired)
}

func TestEdit_BuildsPatchFromAnswers(t *testing.T) {
	f := &fakeSession{user: &models.UserProfile{Name: "Kim Lee", Weight: 70, DailyCaffeineLimit: 300}}
	a := &App{session: f}

	// Keep the name, change weight and limit.
	stubOptionalInputs(t, []string{"", "70", "300"})

	require.NoError(t, a.Edit(context.Background()))
	assert.Nil(t, f.patch.Name)
	require.NotNil(t, f.patch.Weight)
	assert.Equal(t, 70.0, *f.patch.Weight)
	require.NotNil(t, f.patch.DailyCaffeineLimit)
	assert.Equal(t, 300, *f.patch.DailyCaffeineLimit)
}

func TestEdit_NothingToChange(t *testing.T) {
	f := &fakeSession{}
	a := &App{session: f}

	stubOptionalInputs(t, []string{"", "", ""})

	require.NoError(t, a.Edit(context.Background()))
	assert.Equal(t, models.ProfilePatch{}, f.patch, "no request must be sent")
}

func TestEdit_ValidationErrorPropagates(t *testing.T) {
	f := &fakeSession{updateErr: common.ErrValidation}
	a := &App{session: f}

	stubOptionalInputs(t, []string{"", "-5", ""})

	err := a.Edit(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
}
