package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrShipmentTransitionCommandIsNotConstructed = errors.New(
	"ShipmentTransitionCommand must be created via NewShipShipmentCommand or NewDeliverShipmentCommand",
)

// ShipmentTransitionCommand moves one shipment forward. The same shape serves
// both ship and deliver.
type ShipmentTransitionCommand struct {
	shipmentID kernel.UUID
	caller     kernel.Caller

	guard guard.ConstructorGuard
}

type (
	ShipShipmentCommand    struct{ ShipmentTransitionCommand }
	DeliverShipmentCommand struct{ ShipmentTransitionCommand }
)

func NewShipShipmentCommand(shipmentID kernel.UUID, caller kernel.Caller) (ShipShipmentCommand, error) {
	cmd, err := newShipmentTransitionCommand(shipmentID, caller)
	return ShipShipmentCommand{cmd}, err
}

func NewDeliverShipmentCommand(shipmentID kernel.UUID, caller kernel.Caller) (DeliverShipmentCommand, error) {
	cmd, err := newShipmentTransitionCommand(shipmentID, caller)
	return DeliverShipmentCommand{cmd}, err
}

func newShipmentTransitionCommand(shipmentID kernel.UUID, caller kernel.Caller) (ShipmentTransitionCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return ShipmentTransitionCommand{}, err
	}
	if err := caller.Validate(); err != nil {
		return ShipmentTransitionCommand{}, errs.NewValueIsRequiredErrorWithCause("caller", err)
	}

	return ShipmentTransitionCommand{
		shipmentID: shipmentID,
		caller:     caller,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ShipmentTransitionCommand) Validate() error {
	return c.guard.Validate(ErrShipmentTransitionCommandIsNotConstructed)
}

func (c ShipmentTransitionCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c ShipmentTransitionCommand) Caller() kernel.Caller {
	return c.caller
}
