package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the persisted half of a user session. Each user owns at
// most one row at a time; issuing a new token replaces any existing one
// (hard single-session invariant, enforced by a UNIQUE constraint on user_id).
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token's expiry instant has passed at now.
func (t RefreshToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// Session is the result of a successful login or refresh: a short-lived
// stateless access token plus the freshly rotated refresh token.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // always "Bearer"
	User         Identity
}
