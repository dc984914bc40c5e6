package user

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned by Validate on a zero-value User.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is an account known to the workflow. Accounts are provisioned by the
// identity service; the workflow only reads them, mostly to look up drivers.
type User struct {
	id          kernel.UUID
	name        string
	role        Role
	warehouseID *kernel.UUID

	isConstructed bool
}

// NewUser validates and builds a User.
func NewUser(id kernel.UUID, name string, role Role, warehouseID *kernel.UUID) (*User, error) {
	u := &User{isConstructed: true}

	var nameErr error
	name = strings.TrimSpace(name)
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	var warehouseErr error
	if warehouseID != nil {
		if err := warehouseID.Validate(); err != nil {
			warehouseErr = errs.NewValueIsInvalidErrorWithCause("warehouseID", err)
		}
	}

	if err := errors.Join(id.Validate(), nameErr, role.Validate(), warehouseErr); err != nil {
		return nil, err
	}

	u.id = id
	u.name = name
	u.role = role
	u.warehouseID = warehouseID
	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) WarehouseID() *kernel.UUID {
	return u.warehouseID
}

// IsDriver reports whether the user can be assigned orders.
func (u *User) IsDriver() bool {
	return u.role == RoleDriver
}
