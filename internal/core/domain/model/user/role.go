package user

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Role is the permission class of a user.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleDriver    Role = "driver"
	RoleWarehouse Role = "warehouse"
	RoleManager   Role = "manager"
)

// ParseRole validates s and returns it as a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleDriver, RoleWarehouse, RoleManager:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}
