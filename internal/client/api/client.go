// Package api implements the HTTP client for the CaffeTrack auth API.
//
// The server is a black box consumed over JSON; this package owns the
// transport details: the bearer header for access-token auth and the cookie
// jar that carries the httpOnly refresh credential. The refresh credential
// is never readable by client code — the jar attaches it automatically on
// whitelisted paths, exactly like a browser would.
package api

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/caffetrack/internal/client/models"
)

// API paths, relative to the configured base URL.
const (
	PathRegister = "/api/auth/register"
	PathLogin    = "/api/auth/login"
	PathRefresh  = "/api/auth/refresh"
	PathUserInfo = "/api/auth/user/info"
	PathUserEdit = "/api/auth/user/edit"
	PathLogout   = "/api/auth/logout"
)

// Request describes a single HTTP operation against the API. Token, when
// non-empty, is attached as a bearer Authorization header. Body, when
// non-nil, is sent as a JSON payload.
type Request struct {
	Method string
	Path   string
	Token  string
	Body   []byte
}

// Response is the raw outcome of a completed HTTP operation. A Response is
// returned whenever the server answered at all; only transport-level
// failures surface as errors.
type Response struct {
	Status int
	Body   []byte
}

// DecodeJSON unmarshals the response body into v.
func (r *Response) DecodeJSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Client defines the operations the session layer needs from the server.
//
// Register, Login, Refresh and Logout interpret the response status
// themselves and return sentinel errors from internal/common. Call is the
// generic escape hatch for authenticated endpoints: it returns the raw
// Response so the caller can implement its own retry discipline.
//
// All methods honor context cancellation.
type Client interface {
	Register(ctx context.Context, req RegisterRequest) error

	// Login exchanges credentials for an access token. The user profile is
	// returned when the server includes one in the response.
	Login(ctx context.Context, email, password string) (string, *models.UserProfile, error)

	// Refresh requests a new access token using the implicit refresh
	// credential held by the transport. It never sends the access token.
	Refresh(ctx context.Context) (string, error)

	// Logout revokes the session server-side. A 401/403 answer means the
	// session was already gone and is not treated as an error.
	Logout(ctx context.Context, token string) error

	Call(ctx context.Context, req Request) (*Response, error)
}
