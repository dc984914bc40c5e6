// Package parcelrepo stores the parcels of orders with GORM.
package parcelrepo

import (
	"errors"

	"logistics/internal/adapters/out/postgres/columns"
	"logistics/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO is the row of the parcels table. Codes are unique.
type ParcelDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Code    string    `gorm:"type:varchar(64);not null;uniqueIndex"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	return ParcelDTO{
		ID:      p.ID().Bytes(),
		OrderID: p.OrderID().Bytes(),
		Code:    p.Code(),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, idErr := columns.UUID(dto.ID)
	orderID, orderErr := columns.UUID(dto.OrderID)
	if err := errors.Join(idErr, orderErr); err != nil {
		return nil, err
	}
	return parcel.NewParcel(id, orderID, dto.Code)
}
