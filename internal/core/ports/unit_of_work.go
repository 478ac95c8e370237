// Package ports defines the contracts between the application layer and the
// infrastructure: repositories bound to a transaction, the unit of work that
// owns the transaction and the notifier.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for every command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from
// it after Begin run inside the transaction, so row locks taken through
// GetForUpdate are held until Commit or Rollback.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	PaymentRepository() PaymentRepository
	ShipmentRepository() ShipmentRepository
}
