package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipments.
type ShipmentRepository interface {
	Add(ctx context.Context, aggregate *shipment.Shipment) error
	Update(ctx context.Context, aggregate *shipment.Shipment) error
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate is Get holding a row lock on the shipment. The shipment is
	// always locked before its order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// TrackingNumberExists reports whether any shipment already carries tn.
	TrackingNumberExists(ctx context.Context, tn shipment.TrackingNumber) (bool, error)
}
