package session

import (
	"context"

	"github.com/dmitrijs2005/caffetrack/internal/client/storage"
)

// watch consumes store changes made by other sessions ("tabs") and
// reconciles the local authenticated flag. The profile is deliberately not
// re-fetched here: presence or absence of the token is all a change event
// carries, and that is all that gets recomputed.
func (m *Manager) watch() {
	defer close(m.watchDone)

	for c := range m.sub.C {
		if c.Key != storage.KeyAccessToken {
			continue
		}

		present := len(c.NewValue) > 0
		m.mu.Lock()
		m.state.Authenticated = present
		if !present {
			m.state.User = nil
		}
		m.mu.Unlock()

		m.log.Debug(context.Background(), "token changed in another session", "present", present)
	}
}
