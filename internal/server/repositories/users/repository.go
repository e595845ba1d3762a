// Package users declares the repository contract for user rows.
package users

import (
	"context"

	"github.com/dishdash/dishdash/internal/server/models"
)

type Repository interface {
	// EnsureByEmail returns the user with the given (normalized) email,
	// creating it with name when it does not exist yet. Safe under
	// concurrent first sign-ins of the same address.
	EnsureByEmail(ctx context.Context, email, name string) (*models.User, error)

	// GetByID returns common.ErrorNotFound when the user does not exist.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// SetRoleIfUnset assigns role only when the user has none yet and
	// reports whether it did.
	SetRoleIfUnset(ctx context.Context, id string, role models.Role) (bool, error)

	// CreateWithRole inserts a fully provisioned user. Returns
	// common.ErrorAlreadyExists when the email is taken.
	CreateWithRole(ctx context.Context, email, name string, role models.Role) (*models.User, error)

	List(ctx context.Context) ([]models.User, error)
}
