package api

import "github.com/dmitrijs2005/caffetrack/internal/client/models"

// Envelope mirrors the server's common response wrapper: every answer
// carries code/status/message alongside operation-specific fields.
type Envelope struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RegisterRequest is the signup payload. The daily caffeine limit is chosen
// later via profile edit, not at signup.
type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login. User is optional.
type LoginResponse struct {
	Envelope
	Token string              `json:"token"`
	User  *models.UserProfile `json:"user"`
}

// RefreshResponse is the body of a successful token refresh.
type RefreshResponse struct {
	Envelope
	NewToken string `json:"newToken"`
}

// UserResponse is the body of user-info and user-edit answers.
type UserResponse struct {
	Envelope
	User *models.UserProfile `json:"user"`
}
