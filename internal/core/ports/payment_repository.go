package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payments and their
// allocations.
type PaymentRepository interface {
	// Add persists a new payment.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists the payment status and inserts allocations created
	// since the payment was loaded. Existing allocations are never changed.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment with all of its allocations.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetForUpdate is Get holding a row lock on the payment.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*payment.Payment, error)
}
