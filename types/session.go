package types

import "time"

// Session binds an opaque bearer token to an authenticated user for a
// fixed time window. Only the SHA-256 digest of the token is stored;
// the token itself is returned to the client once at login.
type Session struct {
	TokenHash string    `json:"-" db:"token_hash"`
	UserID    int       `json:"user_id" db:"user_id"`
	IssuedAt  time.Time `json:"issued_at" db:"issued_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given
// instant. A session exactly at its expiry is expired.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
