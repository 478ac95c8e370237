package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand opens a Pending shipment for a Paid or Shipped order.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	orderID    kernel.UUID
	caller     kernel.Caller

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(shipmentID, orderID kernel.UUID, caller kernel.Caller) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		shipmentID.Validate(),
		orderID.Validate(),
		caller.Validate(),
	); err != nil {
		return CreateShipmentCommand{}, errs.NewValueIsInvalidErrorWithCause("create shipment", err)
	}

	cmd.shipmentID = shipmentID
	cmd.orderID = orderID
	cmd.caller = caller
	return cmd, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CreateShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateShipmentCommand) Caller() kernel.Caller {
	return c.caller
}
