// Package guard lets commands, queries and value objects detect that they were
// built as zero values instead of through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate on a zero-value guard
// when the caller does not supply its own error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into types that must only be created by a
// constructor. Its zero value reports "not constructed".
//
// Example:
//
//	type UpdateOrdersStatusCommand struct {
//	    orderIDs []kernel.UUID
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c UpdateOrdersStatusCommand) Validate() error {
//	    return c.guard.Validate(ErrUpdateOrdersStatusCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero value it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
