// Package common defines shared constants and sentinel errors used across
// the CaffeTrack client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Token codec errors (malformed or truncated access token).
	ErrTokenMalformed = errors.New("malformed token")

	// Session lifecycle errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAuthExpired      = errors.New("authentication expired")

	// Refresh outcome errors. The server distinguishes an expired refresh
	// credential (401) from an invalid one (403); both end the session.
	ErrRefreshExpired = errors.New("refresh token expired")
	ErrRefreshInvalid = errors.New("refresh token invalid")

	// Server-reported request errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")
	ErrEmailTaken   = errors.New("email already registered")

	// Transport-level errors.
	ErrNetwork = errors.New("network error")

	ErrorInternal = errors.New("internal error")
)
