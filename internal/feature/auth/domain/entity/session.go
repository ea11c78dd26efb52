package entity

import "time"

// Session represents an issued refresh token.
// Revoking a session is how a refresh token gets blacklisted.
type Session struct {
	ID        string     // Refresh token jti
	UserID    string     // Associated user ID
	UserAgent string     // Client's User-Agent header
	IPAddress string     // Client's IP address
	CreatedAt time.Time  // Session creation time
	ExpiresAt time.Time  // Session expiration time
	RevokedAt *time.Time // Revocation time (nil if active)
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsRevoked returns true if the session has been revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid returns true if the session is neither expired nor revoked.
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}

// SessionMeta carries request metadata recorded alongside a new session.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// Credentials is the access/refresh token pair handed to a client after login.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims is the verified content of an access or refresh JWT.
type TokenClaims struct {
	ID        string // jti
	UserID    string // sub
	Email     string
	TokenType string
	ExpiresAt time.Time
}
