package user

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned by Validate on a zero-value Actor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the authenticated caller of a workflow operation.
// warehouseID is the home warehouse of warehouse staff and nil for everybody else
// unless the identity provider says otherwise.
type Actor struct {
	id          kernel.UUID
	role        Role
	warehouseID *kernel.UUID

	isConstructed bool
}

// NewActor builds an Actor from verified identity claims.
func NewActor(id kernel.UUID, role Role, warehouseID *kernel.UUID) (Actor, error) {
	var warehouseErr error
	if warehouseID != nil {
		if err := warehouseID.Validate(); err != nil {
			warehouseErr = errs.NewValueIsInvalidErrorWithCause("warehouseID", err)
		}
	}

	if err := errors.Join(id.Validate(), role.Validate(), warehouseErr); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:            id,
		role:          role,
		warehouseID:   warehouseID,
		isConstructed: true,
	}, nil
}

func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// WarehouseID returns the actor's home warehouse, or nil.
func (a Actor) WarehouseID() *kernel.UUID {
	return a.warehouseID
}
