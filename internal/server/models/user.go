// Package models defines the server-side identity records persisted in the
// database and the principal derived from them.
package models

import (
	"strings"
	"time"
)

// Role is the authorization level of a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a row of the users table. Role is empty until the first
// successful sign-in provisions it.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleFor returns the role a user with the given email receives on first
// sign-in: admin when it matches adminEmail case-insensitively, user
// otherwise. An empty adminEmail never matches.
func RoleFor(email, adminEmail string) Role {
	adminEmail = strings.TrimSpace(adminEmail)
	if adminEmail != "" && strings.EqualFold(strings.TrimSpace(email), adminEmail) {
		return RoleAdmin
	}
	return RoleUser
}
