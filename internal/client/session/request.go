package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/caffetrack/internal/client/api"
	"github.com/dmitrijs2005/caffetrack/internal/client/token"
	"github.com/dmitrijs2005/caffetrack/internal/common"
)

// Do performs an authenticated API operation.
//
// Sequence:
//  1. No stored token: fail immediately with common.ErrNotAuthenticated,
//     without touching the network.
//  2. Token inside the refresh buffer (or already expired): refresh first.
//  3. Send with the bearer header attached.
//  4. On 401: refresh once and resend once. The second response is returned
//     as-is, whatever its status. A failed refresh surfaces
//     common.ErrAuthExpired and the original request is not retried.
func (m *Manager) Do(ctx context.Context, method, path string, body []byte) (*api.Response, error) {
	tok, err := m.store.Token(ctx)
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, common.ErrNotAuthenticated
	}

	// An undecodable token is left to the server to reject; validation is
	// the codec's job, not the transport's.
	if info, derr := token.Decode(tok, m.now()); derr == nil && info.Remaining < m.refreshBuffer {
		m.log.Debug(ctx, "token close to expiry, refreshing before request",
			"path", path, "remaining", info.Remaining)
		newTok, rerr := m.Refresh(ctx)
		if rerr != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrAuthExpired, rerr)
		}
		tok = newTok
	}

	resp, err := m.api.Call(ctx, api.Request{Method: method, Path: path, Token: tok, Body: body})
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusUnauthorized {
		return resp, nil
	}

	m.log.Debug(ctx, "request rejected with 401, refreshing and retrying once", "path", path)

	newTok, err := m.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAuthExpired, err)
	}

	return m.api.Call(ctx, api.Request{Method: method, Path: path, Token: newTok, Body: body})
}
