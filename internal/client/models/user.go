// Package models holds value types shared by the CaffeTrack client layers.
package models

// UserProfile mirrors the server-side user record. A copy is cached in the
// local store so the UI can render instantly after a restart; the server
// copy remains authoritative.
type UserProfile struct {
	ID                 int     `json:"id"`
	Email              string  `json:"email"`
	Name               string  `json:"name"`
	Weight             float64 `json:"weight"`
	DailyCaffeineLimit int     `json:"dailyCaffeineLimit"`
}

// ProfilePatch is a partial update for a user profile. Nil fields are left
// unchanged. It doubles as the wire body for the user-edit endpoint.
type ProfilePatch struct {
	Email              *string  `json:"email,omitempty"`
	Name               *string  `json:"name,omitempty"`
	Weight             *float64 `json:"weight,omitempty"`
	DailyCaffeineLimit *int     `json:"dailyCaffeineLimit,omitempty"`
}

// Apply returns a copy of u with the non-nil patch fields applied.
func (p ProfilePatch) Apply(u UserProfile) UserProfile {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Weight != nil {
		u.Weight = *p.Weight
	}
	if p.DailyCaffeineLimit != nil {
		u.DailyCaffeineLimit = *p.DailyCaffeineLimit
	}
	return u
}
