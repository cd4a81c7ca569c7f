package models

import (
	"time"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both authenticate and refresh calls
type AuthResponse struct {
	User              User   `json:"user"`
	Token             string `json:"token"`
	ExpirationMinutes int    `json:"expirationMinutes"`
}

// Credential is the authenticated session: token, expiry and user always travel together
type Credential struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

func (c Credential) IsZero() bool {
	return c.Token == "" && c.ExpiresAt.IsZero()
}

// Expired reports whether the credential is absent or its expiry is not in the future
func (c Credential) Expired(now time.Time) bool {
	return c.IsZero() || !now.Before(c.ExpiresAt)
}
