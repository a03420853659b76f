package session

import (
	"context"
	"time"

	"github.com/dmitrijs2005/caffetrack/internal/client/token"
)

// EnableAutoRefresh starts a background countdown over the current token's
// remaining lifetime. When the remaining time crosses the configured
// threshold the token is refreshed exactly once, after which the countdown
// continues from the new token's lifetime. Enabling twice is a no-op.
func (m *Manager) EnableAutoRefresh() {
	m.autoMu.Lock()
	defer m.autoMu.Unlock()
	if m.autoStop != nil {
		return
	}
	m.autoStop = make(chan struct{})
	m.autoDone = make(chan struct{})
	go m.autoRefreshLoop(m.autoStop, m.autoDone)
}

// DisableAutoRefresh stops the countdown and waits for the scheduler
// goroutine to exit. Safe to call when the scheduler is not running.
func (m *Manager) DisableAutoRefresh() {
	m.autoMu.Lock()
	defer m.autoMu.Unlock()
	if m.autoStop == nil {
		return
	}
	close(m.autoStop)
	<-m.autoDone
	m.autoStop, m.autoDone = nil, nil
}

// AutoRefreshEnabled reports whether the scheduler is currently running.
func (m *Manager) AutoRefreshEnabled() bool {
	m.autoMu.Lock()
	defer m.autoMu.Unlock()
	return m.autoStop != nil
}

func (m *Manager) autoRefreshLoop(stop, done chan struct{}) {
	defer close(done)

	ctx := context.Background()
	t := time.NewTicker(m.autoTick)
	defer t.Stop()

	armed := true
	for {
		select {
		case <-stop:
			return
		case <-t.C:
		}

		tok, err := m.store.Token(ctx)
		if err != nil || tok == "" {
			continue
		}
		info, err := token.Decode(tok, m.now())
		if err != nil {
			continue
		}

		switch {
		case info.Remaining > m.autoThreshold:
			// A fresh token re-arms the trigger.
			armed = true
		case armed && info.Remaining > 0:
			armed = false
			if _, err := m.Refresh(ctx); err != nil {
				m.log.Warn(ctx, "auto refresh failed", "error", err)
			}
		}
	}
}
