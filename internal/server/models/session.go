package models

import "time"

// Session binds an opaque session token to a user until Expires.
type Session struct {
	ID           string
	SessionToken string
	UserID       string
	Expires      time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.Expires)
}
