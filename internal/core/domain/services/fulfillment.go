package services

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/shipment"
	"ordering/internal/pkg/errs"
)

// ErrOrderNotShippable is returned when a shipment is created for an order
// that is neither Paid nor Shipped.
var ErrOrderNotShippable = errors.New("order is not shippable")

// Fulfillment moves shipments through their status table and pushes the
// owning order forward through the order table.
type Fulfillment struct {
	generate shipment.TrackingNumberGenerator
	now      func() time.Time
}

func NewFulfillment() *Fulfillment {
	return &Fulfillment{
		generate: shipment.NewTrackingNumber,
		now:      time.Now,
	}
}

// NewFulfillmentWith replaces the tracking number generator and the clock.
// Nil arguments keep the defaults.
func NewFulfillmentWith(generate shipment.TrackingNumberGenerator, now func() time.Time) *Fulfillment {
	f := NewFulfillment()
	if generate != nil {
		f.generate = generate
	}
	if now != nil {
		f.now = now
	}
	return f
}

// Generator returns the tracking number generator, used to retry a ship
// after a tracking number collision.
func (f *Fulfillment) Generator() shipment.TrackingNumberGenerator {
	return f.generate
}

// NewShipment creates a Pending shipment for o. Split shipments are allowed,
// so an order that is already Shipped accepts another one.
func (f *Fulfillment) NewShipment(id kernel.UUID, o *order.Order) (*shipment.Shipment, error) {
	if o == nil {
		return nil, errs.NewValueIsRequiredError("order")
	}
	if s := o.Status(); s != order.Paid && s != order.Shipped {
		return nil, errs.NewRuleViolationError(ErrOrderNotShippable, "order", o.ID(), "status is "+s.String())
	}
	return shipment.NewShipment(id, o.ID())
}

// Ship ships s and moves its order to Shipped. The returned flag reports
// whether the order changed; an order already Shipped or Delivered is left
// as is, any other order state fails with an invalid transition.
func (f *Fulfillment) Ship(s *shipment.Shipment, o *order.Order) (bool, error) {
	if err := belongsTo(s, o); err != nil {
		return false, err
	}
	if err := s.Ship(f.generate, f.now()); err != nil {
		return false, err
	}
	return push(o, order.Shipped)
}

// Deliver delivers s and moves its order to Delivered.
func (f *Fulfillment) Deliver(s *shipment.Shipment, o *order.Order) (bool, error) {
	if err := belongsTo(s, o); err != nil {
		return false, err
	}
	if err := s.Deliver(f.now()); err != nil {
		return false, err
	}
	return push(o, order.Delivered)
}

func belongsTo(s *shipment.Shipment, o *order.Order) error {
	if s == nil {
		return errs.NewValueIsRequiredError("shipment")
	}
	if o == nil {
		return errs.NewValueIsRequiredError("order")
	}
	if !s.OrderID().IsEqual(o.ID()) {
		return errs.NewValueIsInvalidError("shipment " + s.ID().String() + " does not belong to order " + o.ID().String())
	}
	return nil
}

func push(o *order.Order, target order.Status) (bool, error) {
	if o.Status().HasReached(target) {
		return false, nil
	}
	if err := o.TransitionTo(target); err != nil {
		return false, err
	}
	return true, nil
}
