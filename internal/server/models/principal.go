package models

// Principal is the authenticated identity attached to a request. It is
// rebuilt from Session and User on every request and never stored.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// NewPrincipal materializes a principal from a user row. A user whose role
// was never provisioned is treated as a regular user.
func NewPrincipal(u *User) *Principal {
	role := u.Role
	if role == "" {
		role = RoleUser
	}
	return &Principal{ID: u.ID, Email: u.Email, Name: u.Name, Role: role}
}
