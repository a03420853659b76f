package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/caffetrack/internal/client/token"
)

// ShowToken decodes the stored access token and prints its claims and
// remaining lifetime. Intended for troubleshooting session problems.
func (a *App) ShowToken(ctx context.Context) error {
	raw, err := a.store.Token(ctx)
	if err != nil {
		return err
	}
	if raw == "" {
		printlnFn("No access token stored")
		return nil
	}

	info, err := token.Decode(raw, time.Now())
	if err != nil {
		printlnFn(fmt.Sprintf("Stored token is malformed: %v", err))
		return err
	}

	printlnFn(fmt.Sprintf("Subject:   %s", info.Subject))
	if !info.IssuedAt.IsZero() {
		printlnFn(fmt.Sprintf("Issued:    %s", info.IssuedAt.Format(time.RFC3339)))
	}
	printlnFn(fmt.Sprintf("Expires:   %s", info.ExpiresAt.Format(time.RFC3339)))
	if info.Expired {
		printlnFn("Status:    expired")
	} else {
		printlnFn(fmt.Sprintf("Status:    valid, %s remaining", info.Remaining.Round(time.Second)))
	}
	return nil
}

// RefreshToken forces a token refresh outside the automatic cycle.
func (a *App) RefreshToken(ctx context.Context) error {
	if _, err := a.session.Refresh(ctx); err != nil {
		printlnFn(fmt.Sprintf("Refresh failed: %v", err))
		return err
	}
	printlnFn("Access token refreshed")
	return nil
}

// SetAutoRefresh starts or stops the background refresh scheduler.
func (a *App) SetAutoRefresh(ctx context.Context, on bool) error {
	if on {
		a.session.EnableAutoRefresh()
		printlnFn("Auto refresh enabled")
	} else {
		a.session.DisableAutoRefresh()
		printlnFn("Auto refresh disabled")
	}
	return nil
}

// ToggleDarkMode flips the persisted dark mode preference. The preference
// survives logout; it belongs to the installation, not the account.
func (a *App) ToggleDarkMode(ctx context.Context) error {
	on, err := a.store.DarkMode(ctx)
	if err != nil {
		return err
	}
	if err := a.store.SetDarkMode(ctx, !on); err != nil {
		return err
	}
	if !on {
		printlnFn("Dark mode on")
	} else {
		printlnFn("Dark mode off")
	}
	return nil
}
