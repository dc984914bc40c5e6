package ports

import (
	"context"

	"logistics/internal/core/domain/model/parcel"
)

// ParcelRepository stores the parcels of orders.
type ParcelRepository interface {
	AddMany(ctx context.Context, parcels []*parcel.Parcel) error

	// GetByCode returns errs.ObjectNotFoundError for unknown codes.
	GetByCode(ctx context.Context, code string) (*parcel.Parcel, error)
}
