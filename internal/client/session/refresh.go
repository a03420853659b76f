package session

import (
	"context"
)

const refreshKey = "refresh"

// Refresh obtains a new access token using the transport-held refresh
// credential and stores it. Concurrent callers are coalesced: while one
// refresh is in flight, every additional caller waits for and shares its
// outcome instead of issuing another request.
//
// Failure means the session is over: the token and cached profile are
// cleared before the error is returned. The error distinguishes the cause
// (common.ErrRefreshExpired, common.ErrRefreshInvalid, common.ErrNetwork,
// or a generic internal error).
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	v, err, _ := m.sf.Do(refreshKey, func() (any, error) {
		return m.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (m *Manager) doRefresh(ctx context.Context) (string, error) {
	m.log.Debug(ctx, "refreshing access token")

	newTok, err := m.api.Refresh(ctx)
	if err != nil {
		// Cannot refresh is treated as session over, whatever the cause:
		// an ambiguous outcome must not leave a stale credential behind.
		m.log.Warn(ctx, "token refresh failed", "error", err)
		m.clearLocal(ctx)
		return "", err
	}

	if err := m.store.SetToken(ctx, newTok); err != nil {
		// A token that was issued but not persisted is as good as no token.
		m.clearLocal(ctx)
		return "", err
	}

	m.mu.Lock()
	m.state.Authenticated = true
	m.mu.Unlock()

	m.log.Debug(ctx, "access token refreshed")
	return newTok, nil
}
