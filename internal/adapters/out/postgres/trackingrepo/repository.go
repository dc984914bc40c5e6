package trackingrepo

import (
	"context"

	"logistics/internal/adapters/out/postgres/columns"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/tracking"

	"gorm.io/gorm"
)

// GormTrackingRepository implements ports.TrackingRepository. Rows are only
// ever inserted.
type GormTrackingRepository struct {
	db *gorm.DB
}

func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// AddMany inserts events in one statement, keeping their order in Seq.
func (r *GormTrackingRepository) AddMany(ctx context.Context, events []tracking.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]TrackingEventDTO, 0, len(events))
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ListByOrderIDs returns the events of the orders, oldest first.
func (r *GormTrackingRepository) ListByOrderIDs(ctx context.Context, orderIDs []kernel.UUID) ([]tracking.Event, error) {
	if len(orderIDs) == 0 {
		return []tracking.Event{}, nil
	}

	var dtos []TrackingEventDTO
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", columns.UUIDs(orderIDs)).
		Order("occurred_at, seq").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]tracking.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
