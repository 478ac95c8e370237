package queries

import (
	"database/sql"
	"time"

	"ordering/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// shipmentColumns is the select list scanShipment expects, with s aliasing
// the shipments table.
const shipmentColumns = `s.id, s.order_id, s.status, s.tracking_number, s.shipped_at, s.delivered_at, s.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

var (
	_ rowScanner = (*sql.Row)(nil)
	_ rowScanner = (*sql.Rows)(nil)
)

func scanShipment(row rowScanner, extra ...any) (ShipmentView, error) {
	var (
		id, orderID            uuid.UUID
		status                 int
		trackingNumber         *string
		shippedAt, deliveredAt *time.Time
		createdAt              time.Time
	)
	dest := append([]any{&id, &orderID, &status, &trackingNumber, &shippedAt, &deliveredAt, &createdAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return ShipmentView{}, err
	}

	view := ShipmentView{
		Status:         shipment.Status(status),
		TrackingNumber: optionalString(trackingNumber),
		ShippedAt:      utc(shippedAt),
		DeliveredAt:    utc(deliveredAt),
		CreatedAt:      createdAt.UTC(),
	}
	var err error
	if view.ID, err = toUUID(id); err != nil {
		return ShipmentView{}, err
	}
	if view.OrderID, err = toUUID(orderID); err != nil {
		return ShipmentView{}, err
	}
	return view, nil
}
