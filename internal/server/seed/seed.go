// Package seed creates the initial admin account.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/server/models"
	"github.com/dishdash/dishdash/internal/server/repositories/users"
)

const (
	DefaultAdminEmail = "admin@dishdash.com"
	DefaultAdminName  = "Admin User"
)

// AdminEmail returns the address the admin row is stored under.
func AdminEmail(raw string) string {
	if email := common.NormalizeEmail(raw); email != "" {
		return email
	}
	return DefaultAdminEmail
}

// Admin inserts an admin user for email unless one with that address
// exists. It reports whether a row was created.
func Admin(ctx context.Context, repo users.Repository, email, name string) (bool, error) {
	email = AdminEmail(email)
	if name == "" {
		name = DefaultAdminName
	}

	if _, err := repo.CreateWithRole(ctx, email, name, models.RoleAdmin); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("create admin %s: %w", email, err)
	}
	return true, nil
}
