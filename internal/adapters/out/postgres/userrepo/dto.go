// Package userrepo reads and seeds user accounts with GORM.
package userrepo

import (
	"errors"

	"logistics/internal/adapters/out/postgres/columns"
	"logistics/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the row of the users table.
type UserDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Role        string     `gorm:"type:varchar(16);not null;index"`
	WarehouseID *uuid.UUID `gorm:"type:uuid"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID().Bytes(),
		Name:        u.Name(),
		Role:        u.Role().String(),
		WarehouseID: columns.NullableUUID(u.WarehouseID()),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, idErr := columns.UUID(dto.ID)
	warehouseID, warehouseErr := columns.OptionalUUID(dto.WarehouseID)
	role, roleErr := user.ParseRole(dto.Role)
	if err := errors.Join(idErr, warehouseErr, roleErr); err != nil {
		return nil, err
	}

	return user.NewUser(id, dto.Name, role, warehouseID)
}
