package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Loaded orders carry the paid amount derived from allocations of payments
// that are Pending or Completed.
type OrderRepository interface {
	// Add persists a new order together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status of an existing order. Items and total are
	// immutable after creation.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and holds a row lock on it until the
	// surrounding transaction ends. Callers locking several orders must do
	// so in ascending id order (kernel.UUID.Compare).
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
