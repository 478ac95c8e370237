package shipment

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment was not created
// through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Shipment is the delivery of (part of) one order. An order may have several
// shipments when it is split.
type Shipment struct {
	id             kernel.UUID
	orderID        kernel.UUID
	status         Status
	trackingNumber TrackingNumber
	shippedAt      *time.Time
	deliveredAt    *time.Time

	isConstructed bool
}

// NewShipment creates a Pending shipment for orderID. Whether the order may
// be shipped is checked by the caller.
func NewShipment(id, orderID kernel.UUID) (*Shipment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	return &Shipment{
		id:            id,
		orderID:       orderID,
		status:        Pending,
		isConstructed: true,
	}, nil
}

// RestoreShipment rebuilds a shipment from persistence.
func RestoreShipment(
	id, orderID kernel.UUID,
	status Status,
	trackingNumber TrackingNumber,
	shippedAt, deliveredAt *time.Time,
) (*Shipment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	return &Shipment{
		id:             id,
		orderID:        orderID,
		status:         status,
		trackingNumber: trackingNumber,
		shippedAt:      shippedAt,
		deliveredAt:    deliveredAt,
		isConstructed:  true,
	}, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

func (s *Shipment) Status() Status {
	return s.status
}

func (s *Shipment) TrackingNumber() TrackingNumber {
	return s.trackingNumber
}

func (s *Shipment) ShippedAt() *time.Time {
	return s.shippedAt
}

func (s *Shipment) DeliveredAt() *time.Time {
	return s.deliveredAt
}

// Ship moves a Pending shipment to Shipped. A tracking number is taken from
// generate only when none was assigned before.
func (s *Shipment) Ship(generate TrackingNumberGenerator, at time.Time) error {
	if err := s.transitionTo(Shipped); err != nil {
		return err
	}

	if s.trackingNumber.IsEmpty() {
		s.trackingNumber = generate()
	}
	s.shippedAt = &at
	return nil
}

// RegenerateTrackingNumber replaces the tracking number of a shipment that is
// being shipped after storage reported a collision.
func (s *Shipment) RegenerateTrackingNumber(generate TrackingNumberGenerator) {
	s.trackingNumber = generate()
}

// Deliver moves a Shipped shipment to Delivered.
func (s *Shipment) Deliver(at time.Time) error {
	if err := s.transitionTo(Delivered); err != nil {
		return err
	}

	s.deliveredAt = &at
	return nil
}

func (s *Shipment) transitionTo(target Status) error {
	if !s.status.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError("shipment", s.id, s.status, target)
	}
	s.status = target
	return nil
}
