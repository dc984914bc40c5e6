package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary. Repositories obtained after Begin
// share its transaction; repositories obtained without an active transaction
// use the plain connection.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active or the rollback fails.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	TrackingRepository() TrackingRepository
	UserRepository() UserRepository
	ParcelRepository() ParcelRepository
	OutboxRepository() OutboxRepository
}
