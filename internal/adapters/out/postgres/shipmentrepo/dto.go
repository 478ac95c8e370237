// Package shipmentrepo persists shipments.
package shipmentrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// TrackingNumberIndex is the unique index backing tracking number uniqueness.
const TrackingNumberIndex = "idx_shipments_tracking_number"

// ShipmentDTO is the shipments table. TrackingNumber stays NULL until the
// shipment is shipped so the unique index ignores pending rows.
type ShipmentDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status         int        `gorm:"not null;index"`
	TrackingNumber *string    `gorm:"type:varchar(32);uniqueIndex:idx_shipments_tracking_number"`
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CreatedAt      time.Time  `gorm:"index"`
	UpdatedAt      time.Time
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	var tn *string
	if !s.TrackingNumber().IsEmpty() {
		v := s.TrackingNumber().String()
		tn = &v
	}

	return ShipmentDTO{
		ID:             s.ID().Bytes(),
		OrderID:        s.OrderID().Bytes(),
		Status:         int(s.Status()),
		TrackingNumber: tn,
		ShippedAt:      utc(s.ShippedAt()),
		DeliveredAt:    utc(s.DeliveredAt()),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var tn shipment.TrackingNumber
	if dto.TrackingNumber != nil {
		tn = shipment.TrackingNumber(*dto.TrackingNumber)
	}

	return shipment.RestoreShipment(id, orderID, shipment.Status(dto.Status), tn, dto.ShippedAt, dto.DeliveredAt)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
