package models

import "time"

// VerificationToken is a pending magic link. Token holds the hash of the
// secret sent by email, never the secret itself.
type VerificationToken struct {
	Identifier string
	Token      string
	Expires    time.Time
}

// Expired reports whether the token can no longer be redeemed at now.
func (v *VerificationToken) Expired(now time.Time) bool {
	return !now.Before(v.Expires)
}
