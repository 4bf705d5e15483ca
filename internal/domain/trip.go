package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a shared travel record: a titled post with photos, tags, and an
// optional geolocation, owned by exactly one author. Only the author may
// update or delete it.
type Trip struct {
	ID          uuid.UUID
	Title       string
	Description string
	Photos      []string // ordered public URLs; the first is the primary image
	Tags        []string
	Latitude    *float64 // nil when the trip has no location
	Longitude   *float64
	AuthorID    uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// AuthorEmail and AuthorDisplayName are read-only enrichment populated
	// by repo queries that join users. They are never written back.
	AuthorEmail       string
	AuthorDisplayName string
}

// OwnedBy reports whether id is the trip's author.
func (t Trip) OwnedBy(id Identity) bool {
	return t.AuthorID == id.UserID
}
