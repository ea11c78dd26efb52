package entity

import "time"

// MagicLinkToken is one issued passwordless login attempt.
// The Token value is both the primary key and the bearer credential sent by email.
type MagicLinkToken struct {
	Token     string    // Opaque UUIDv4 string
	UserID    string    // User this token authenticates
	CreatedAt time.Time // Issuance time, never updated
	Used      bool      // Set exactly once on successful confirmation
}

// ExpiresAt returns the first instant at which the token is no longer valid.
func (t *MagicLinkToken) ExpiresAt(window time.Duration) time.Time {
	return t.CreatedAt.Add(window)
}
