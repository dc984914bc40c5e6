package postgres

import (
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/adapters/out/postgres/outboxrepo"
	"logistics/internal/adapters/out/postgres/parcelrepo"
	"logistics/internal/adapters/out/postgres/trackingrepo"
	"logistics/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Models lists every table of the service, in creation order.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&orderrepo.OrderDTO{},
		&parcelrepo.ParcelDTO{},
		&trackingrepo.TrackingEventDTO{},
		&outboxrepo.OutboxMessageDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
