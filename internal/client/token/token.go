// Package token decodes CaffeTrack access tokens locally, without contacting
// the server and without verifying the signature. The server remains the
// authority on validity; the client only needs the expiry timestamp and the
// subject claims to drive expiry checks and proactive refresh.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/caffetrack/internal/common"
)

// Info describes a decoded access token relative to a particular moment.
type Info struct {
	// Claims is the raw decoded payload.
	Claims jwt.MapClaims

	// Subject is the sub claim, empty if absent.
	Subject string

	// IssuedAt is the iat claim, zero if absent.
	IssuedAt time.Time

	// ExpiresAt is the exp claim. Always present: tokens without exp are
	// rejected as malformed.
	ExpiresAt time.Time

	// Expired reports whether ExpiresAt is in the past relative to now.
	Expired bool

	// Remaining is the time left until expiry. Negative once expired.
	Remaining time.Duration
}

// Decode splits raw into its three dot-delimited segments and decodes the
// payload segment. Any malformed input — wrong segment count, invalid
// base64url, invalid JSON, missing exp claim — yields an error wrapping
// common.ErrTokenMalformed. Decode never panics and performs no I/O.
func Decode(raw string, now time.Time) (*Info, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTokenMalformed, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: missing or invalid exp claim", common.ErrTokenMalformed)
	}

	info := &Info{
		Claims:    claims,
		ExpiresAt: exp.Time,
		Expired:   exp.Time.Before(now),
		Remaining: exp.Time.Sub(now),
	}

	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}

	return info, nil
}
