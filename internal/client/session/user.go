package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/caffetrack/internal/client/api"
	"github.com/dmitrijs2005/caffetrack/internal/client/models"
	"github.com/dmitrijs2005/caffetrack/internal/common"
)

// FetchUser loads the current user's profile, caches it, and marks the
// session authenticated. A 403 after the retry cycle ends the session.
func (m *Manager) FetchUser(ctx context.Context) (*models.UserProfile, error) {
	resp, err := m.Do(ctx, http.MethodGet, api.PathUserInfo, nil)
	if err != nil {
		return nil, err
	}

	switch resp.Status {
	case http.StatusOK:
		var ur api.UserResponse
		if err := resp.DecodeJSON(&ur); err != nil || ur.User == nil {
			return nil, fmt.Errorf("%w: unusable user info response", common.ErrorInternal)
		}

		if err := m.store.SetProfile(ctx, ur.User); err != nil {
			m.log.Error(ctx, "failed to cache user profile", "error", err)
		}
		m.mu.Lock()
		m.state.Authenticated = true
		m.state.User = ur.User
		m.mu.Unlock()
		return ur.User, nil

	// A 401 here already survived the retry cycle; both rejections mean
	// the session is over.
	case http.StatusUnauthorized, http.StatusForbidden:
		m.clearLocal(ctx)
		return nil, common.ErrAuthExpired

	case http.StatusNotFound:
		return nil, common.ErrorNotFound

	default:
		return nil, fmt.Errorf("%w: user info failed with status %d", common.ErrorInternal, resp.Status)
	}
}

// UpdateProfile sends a partial profile edit. The cached profile is updated
// optimistically before the request and reverted if the server rejects it.
func (m *Manager) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.UserProfile, error) {
	m.mu.Lock()
	prev := m.state.User
	var optimistic *models.UserProfile
	if prev != nil {
		merged := patch.Apply(*prev)
		optimistic = &merged
		m.state.User = optimistic
	}
	m.mu.Unlock()

	if optimistic != nil {
		if err := m.store.SetProfile(ctx, optimistic); err != nil {
			m.log.Error(ctx, "failed to cache optimistic profile", "error", err)
		}
	}

	body, err := json.Marshal(patch)
	if err != nil {
		m.revertProfile(ctx, prev)
		return nil, fmt.Errorf("failed to encode profile patch: %w", err)
	}

	resp, err := m.Do(ctx, http.MethodPatch, api.PathUserEdit, body)
	if err != nil {
		m.revertProfile(ctx, prev)
		return nil, err
	}

	switch resp.Status {
	case http.StatusOK:
		var ur api.UserResponse
		if err := resp.DecodeJSON(&ur); err == nil && ur.User != nil {
			// Reconcile with the server's view of the record.
			if err := m.store.SetProfile(ctx, ur.User); err != nil {
				m.log.Error(ctx, "failed to cache user profile", "error", err)
			}
			m.mu.Lock()
			m.state.User = ur.User
			m.mu.Unlock()
			return ur.User, nil
		}
		return optimistic, nil

	case http.StatusBadRequest:
		m.revertProfile(ctx, prev)
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, serverMessage(resp))

	case http.StatusForbidden:
		m.revertProfile(ctx, prev)
		m.clearLocal(ctx)
		return nil, common.ErrAuthExpired

	default:
		m.revertProfile(ctx, prev)
		return nil, fmt.Errorf("%w: profile edit failed with status %d", common.ErrorInternal, resp.Status)
	}
}

func (m *Manager) revertProfile(ctx context.Context, prev *models.UserProfile) {
	m.mu.Lock()
	m.state.User = prev
	m.mu.Unlock()
	if prev != nil {
		if err := m.store.SetProfile(ctx, prev); err != nil {
			m.log.Error(ctx, "failed to restore cached profile", "error", err)
		}
	}
}

func serverMessage(resp *api.Response) string {
	var env api.Envelope
	if err := resp.DecodeJSON(&env); err != nil || env.Message == "" {
		return fmt.Sprintf("status %d", resp.Status)
	}
	return env.Message
}
