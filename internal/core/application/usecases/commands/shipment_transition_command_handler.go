package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/shipment"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// maxTrackingAttempts bounds how often a colliding tracking number is
// regenerated before giving up.
const maxTrackingAttempts = 3

// ErrTrackingNumberExhausted is returned when every generated tracking
// number collided with an existing one.
var ErrTrackingNumberExhausted = errors.New("could not generate a unique tracking number")

// ShipShipmentCommandHandler ships a Pending shipment and pushes its order to
// Shipped. The shipment row is locked before the order row; a second
// concurrent ship waits for the lock, then sees Shipped and fails with an
// invalid transition.
type ShipShipmentCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	fulfillment *services.Fulfillment
	notifier    ports.Notifier
}

func NewShipShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	fulfillment *services.Fulfillment,
	notifier ports.Notifier,
) ShipShipmentCommandHandler {
	return ShipShipmentCommandHandler{
		uowFactory:  uowFactory,
		fulfillment: fulfillment,
		notifier:    notifier,
	}
}

func (h ShipShipmentCommandHandler) Handle(ctx context.Context, cmd ShipShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := runShipmentTransition(ctx, h.uowFactory, cmd.ShipmentTransitionCommand,
		func(ctx context.Context, repo ports.ShipmentRepository, s *shipment.Shipment, o *order.Order) error {
			hadTrackingNumber := !s.TrackingNumber().IsEmpty()
			if _, err := h.fulfillment.Ship(s, o); err != nil {
				return err
			}
			if hadTrackingNumber {
				return nil
			}
			return h.ensureUniqueTrackingNumber(ctx, repo, s)
		})
	if err != nil {
		return nil, err
	}

	h.notifier.Notify(context.WithoutCancel(ctx), s.ID(), ports.NotificationShipped)
	return s, nil
}

func (h ShipShipmentCommandHandler) ensureUniqueTrackingNumber(
	ctx context.Context,
	repo ports.ShipmentRepository,
	s *shipment.Shipment,
) error {
	for range maxTrackingAttempts {
		exists, err := repo.TrackingNumberExists(ctx, s.TrackingNumber())
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}
		s.RegenerateTrackingNumber(h.fulfillment.Generator())
	}
	return errs.NewRuleViolationError(ErrTrackingNumberExhausted, "shipment", s.ID(), "")
}

// DeliverShipmentCommandHandler delivers a Shipped shipment and pushes its
// order to Delivered.
type DeliverShipmentCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	fulfillment *services.Fulfillment
	notifier    ports.Notifier
}

func NewDeliverShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	fulfillment *services.Fulfillment,
	notifier ports.Notifier,
) DeliverShipmentCommandHandler {
	return DeliverShipmentCommandHandler{
		uowFactory:  uowFactory,
		fulfillment: fulfillment,
		notifier:    notifier,
	}
}

func (h DeliverShipmentCommandHandler) Handle(ctx context.Context, cmd DeliverShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := runShipmentTransition(ctx, h.uowFactory, cmd.ShipmentTransitionCommand,
		func(_ context.Context, _ ports.ShipmentRepository, s *shipment.Shipment, o *order.Order) error {
			_, err := h.fulfillment.Deliver(s, o)
			return err
		})
	if err != nil {
		return nil, err
	}

	h.notifier.Notify(context.WithoutCancel(ctx), s.ID(), ports.NotificationDelivered)
	return s, nil
}

type shipmentStep func(ctx context.Context, repo ports.ShipmentRepository, s *shipment.Shipment, o *order.Order) error

// runShipmentTransition locks the shipment, then its order, runs step and
// persists both. Only staff may move shipments.
func runShipmentTransition(
	ctx context.Context,
	uowFactory ShipmentUoWFactory,
	cmd ShipmentTransitionCommand,
	step shipmentStep,
) (*shipment.Shipment, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	orderRepo := uow.OrderRepository()

	s, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	if !cmd.Caller().IsPrivileged() {
		return nil, errs.NewAccessDeniedError("shipment", s.ID())
	}

	o, err := orderRepo.GetForUpdate(ctx, s.OrderID())
	if err != nil {
		return nil, err
	}

	if err = step(ctx, shipmentRepo, s, o); err != nil {
		return nil, err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
