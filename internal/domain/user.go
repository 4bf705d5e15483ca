// Package domain contains the core data types for the travelshare application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash holds the bcrypt hash of the
// password and must never leave the service layer — handlers map users to
// response DTOs that omit it.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string // optional, empty when never set
	CreatedAt    time.Time
}

// Identity is the authenticated caller of a request, resolved from a verified
// access token. Services that mutate owned resources take an Identity as an
// explicit argument — there is no ambient "current user" state.
type Identity struct {
	UserID uuid.UUID
	Email  string
}
