package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// NotificationKind names the shipment event a customer is told about.
type NotificationKind string

const (
	NotificationShipped   NotificationKind = "shipped"
	NotificationDelivered NotificationKind = "delivered"
)

// Notifier tells customers about shipment events. It is called after the
// transaction committed; failures are the notifier's concern and never
// reach the caller.
type Notifier interface {
	Notify(ctx context.Context, shipmentID kernel.UUID, kind NotificationKind)
}
