package parcelrepo

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormParcelRepository implements ports.ParcelRepository.
type GormParcelRepository struct {
	db *gorm.DB
}

func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

func (r *GormParcelRepository) AddMany(ctx context.Context, parcels []*parcel.Parcel) error {
	if len(parcels) == 0 {
		return nil
	}

	dtos := make([]ParcelDTO, 0, len(parcels))
	for _, p := range parcels {
		if err := p.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(p))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetByCode looks a parcel up by its normalized scan code.
func (r *GormParcelRepository) GetByCode(ctx context.Context, code string) (*parcel.Parcel, error) {
	code = parcel.NormalizeCode(code)
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto ParcelDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", code)
		}
		return nil, err
	}

	return toDomain(dto)
}
