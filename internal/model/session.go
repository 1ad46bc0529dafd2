package model

import "time"

// Session is an authenticated browser session. The token is an opaque
// random value; the cookie the client holds is the token plus an HMAC
// signature, so only tokens we issued ever reach storage.
type Session struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at the given time
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
