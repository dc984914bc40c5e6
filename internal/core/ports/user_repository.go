package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
)

// UserRepository reads the accounts the workflow refers to.
type UserRepository interface {
	// Add persists a user. Accounts are normally provisioned by the identity
	// service; this is used by seeding and tests.
	Add(ctx context.Context, u *user.User) error

	// Get returns errs.ObjectNotFoundError when the user does not exist.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}
