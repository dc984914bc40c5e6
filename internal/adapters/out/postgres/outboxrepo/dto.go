// Package outboxrepo stores order-changed notifications until the relay has
// published them.
package outboxrepo

import (
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/columns"
	"logistics/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// OutboxMessageDTO is the row of the outbox_messages table. Pending rows are
// found through the partial index on published_at.
type OutboxMessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType   string     `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;not null;index:idx_outbox_pending,where:published_at IS NULL"`
	Attempts    int        `gorm:"type:int;not null;default:0"`
	PublishedAt *time.Time `gorm:"type:timestamptz"`
	LastError   *string    `gorm:"type:text"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m *outbox.Message) OutboxMessageDTO {
	return OutboxMessageDTO{
		ID:          m.ID().Bytes(),
		EventType:   m.EventType(),
		AggregateID: m.AggregateID().Bytes(),
		Payload:     m.Payload(),
		CreatedAt:   m.CreatedAt(),
		Attempts:    m.Attempts(),
		PublishedAt: m.PublishedAt(),
		LastError:   columns.NullableString(m.LastError()),
	}
}

func toDomain(dto OutboxMessageDTO) (*outbox.Message, error) {
	id, idErr := columns.UUID(dto.ID)
	aggregateID, aggregateErr := columns.UUID(dto.AggregateID)
	if err := errors.Join(idErr, aggregateErr); err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(outbox.RestoreParams{
		ID:          id,
		EventType:   dto.EventType,
		AggregateID: aggregateID,
		Payload:     dto.Payload,
		CreatedAt:   dto.CreatedAt.UTC(),
		Attempts:    dto.Attempts,
		PublishedAt: dto.PublishedAt,
		LastError:   columns.String(dto.LastError),
	})
}
