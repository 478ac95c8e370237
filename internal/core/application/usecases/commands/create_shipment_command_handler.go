package commands

import (
	"context"

	"ordering/internal/core/domain/model/shipment"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

// CreateShipmentCommandHandler lets staff open a shipment. The order row is
// locked so a concurrent cancellation cannot slip in between the status
// check and the insert.
type CreateShipmentCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	fulfillment *services.Fulfillment
}

func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	fulfillment *services.Fulfillment,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory:  uowFactory,
		fulfillment: fulfillment,
	}
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !cmd.Caller().IsPrivileged() {
		return nil, errs.NewAccessDeniedError("order", o.ID())
	}

	created, err := h.fulfillment.NewShipment(cmd.ShipmentID(), o)
	if err != nil {
		return nil, err
	}

	if err = uow.ShipmentRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
