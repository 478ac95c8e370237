package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/shipment"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sequenceGenerator(numbers ...shipment.TrackingNumber) shipment.TrackingNumberGenerator {
	i := 0
	return func() shipment.TrackingNumber {
		tn := numbers[i%len(numbers)]
		i++
		return tn
	}
}

type shipmentFixture struct {
	uow       *MockUoW
	shipments *MockShipmentRepository
	orders    *MockOrderRepository
	notifier  *MockNotifier
}

func newShipmentFixture() shipmentFixture {
	f := shipmentFixture{
		uow:       newTxUoW(),
		shipments: new(MockShipmentRepository),
		orders:    new(MockOrderRepository),
		notifier:  new(MockNotifier),
	}
	f.uow.On("ShipmentRepository").Return(f.shipments).Once()
	f.uow.On("OrderRepository").Return(f.orders).Once()
	return f
}

func TestCreateShipmentCommandHandler(t *testing.T) {
	t.Run("admin opens a shipment for a paid order", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, kernel.NewUUID(), order.Paid)
		cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), o.ID(), admin(t))
		require.NoError(t, err)

		f := newShipmentFixture()
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		f.shipments.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		h := commands.NewCreateShipmentCommandHandler(shipmentFactory{uow: f.uow}, services.NewFulfillment())
		s, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, shipment.Pending, s.Status())
		assert.True(t, s.ID().IsEqual(cmd.ShipmentID()))
		f.uow.AssertExpectations(t)
	})

	t.Run("pending order is not shippable", func(t *testing.T) {
		ctx := t.Context()
		o := pendingOrder(t, kernel.NewUUID(), "10.00")
		cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), o.ID(), admin(t))
		require.NoError(t, err)

		f := newShipmentFixture()
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		h := commands.NewCreateShipmentCommandHandler(shipmentFactory{uow: f.uow}, services.NewFulfillment())
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, services.ErrOrderNotShippable)
		f.shipments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("customers cannot open shipments", func(t *testing.T) {
		ctx := t.Context()
		caller := customer(t)
		o := orderIn(t, caller.UserID(), order.Paid)
		cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), o.ID(), caller)
		require.NoError(t, err)

		f := newShipmentFixture()
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		h := commands.NewCreateShipmentCommandHandler(shipmentFactory{uow: f.uow}, services.NewFulfillment())
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
	})
}

func TestShipShipmentCommandHandler(t *testing.T) {
	t.Run("ships, pushes the order and notifies after commit", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, kernel.NewUUID(), order.Paid)
		s := pendingShipment(t, o.ID())
		cmd, err := commands.NewShipShipmentCommand(s.ID(), admin(t))
		require.NoError(t, err)

		f := newShipmentFixture()
		mock.InOrder(
			f.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once(),
			f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
			f.shipments.On("TrackingNumberExists", ctx, shipment.TrackingNumber("TRK-AAAAAAAAAAAA")).Return(false, nil).Once(),
			f.shipments.On("Update", ctx, s).Return(nil).Once(),
			f.orders.On("Update", ctx, o).Return(nil).Once(),
		)
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.notifier.On("Notify", mock.Anything, s.ID(), ports.NotificationShipped).Return().Once()

		fulfillment := services.NewFulfillmentWith(sequenceGenerator("TRK-AAAAAAAAAAAA"), nil)
		h := commands.NewShipShipmentCommandHandler(shipmentFactory{uow: f.uow}, fulfillment, f.notifier)
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, shipment.Shipped, result.Status())
		assert.Equal(t, shipment.TrackingNumber("TRK-AAAAAAAAAAAA"), result.TrackingNumber())
		assert.Equal(t, order.Shipped, o.Status())
		f.uow.AssertExpectations(t)
		f.shipments.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("regenerates a colliding tracking number", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, kernel.NewUUID(), order.Paid)
		s := pendingShipment(t, o.ID())
		cmd, err := commands.NewShipShipmentCommand(s.ID(), admin(t))
		require.NoError(t, err)

		f := newShipmentFixture()
		f.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		f.shipments.On("TrackingNumberExists", ctx, shipment.TrackingNumber("TRK-TAKEN0000000")).Return(true, nil).Once()
		f.shipments.On("TrackingNumberExists", ctx, shipment.TrackingNumber("TRK-FREE00000000")).Return(false, nil).Once()
		f.shipments.On("Update", ctx, s).Return(nil).Once()
		f.orders.On("Update", ctx, o).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.notifier.On("Notify", mock.Anything, s.ID(), ports.NotificationShipped).Return().Once()

		fulfillment := services.NewFulfillmentWith(sequenceGenerator("TRK-TAKEN0000000", "TRK-FREE00000000"), nil)
		h := commands.NewShipShipmentCommandHandler(shipmentFactory{uow: f.uow}, fulfillment, f.notifier)
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, shipment.TrackingNumber("TRK-FREE00000000"), result.TrackingNumber())
	})

	t.Run("gives up when every tracking number collides", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, kernel.NewUUID(), order.Paid)
		s := pendingShipment(t, o.ID())
		cmd, err := commands.NewShipShipmentCommand(s.ID(), admin(t))
		require.NoError(t, err)

		f := newShipmentFixture()
		f.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		f.shipments.On("TrackingNumberExists", ctx, mock.Anything).Return(true, nil)

		h := commands.NewShipShipmentCommandHandler(shipmentFactory{uow: f.uow},
			services.NewFulfillmentWith(sequenceGenerator("TRK-TAKEN0000000"), nil), f.notifier)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrTrackingNumberExhausted)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second ship fails and does not notify", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, kernel.NewUUID(), order.Shipped)
		s, err := shipment.RestoreShipment(kernel.NewUUID(), o.ID(), shipment.Shipped, "TRK-ABCDEF123456", nil, nil)
		require.NoError(t, err)
		cmd, err := commands.NewShipShipmentCommand(s.ID(), admin(t))
		require.NoError(t, err)

		f := newShipmentFixture()
		f.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		h := commands.NewShipShipmentCommandHandler(shipmentFactory{uow: f.uow}, services.NewFulfillment(), f.notifier)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, shipment.TrackingNumber("TRK-ABCDEF123456"), s.TrackingNumber())
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("customers cannot ship", func(t *testing.T) {
		ctx := t.Context()
		s := pendingShipment(t, kernel.NewUUID())
		cmd, err := commands.NewShipShipmentCommand(s.ID(), customer(t))
		require.NoError(t, err)

		f := newShipmentFixture()
		f.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()

		h := commands.NewShipShipmentCommandHandler(shipmentFactory{uow: f.uow}, services.NewFulfillment(), f.notifier)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		f.orders.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	})
}

func TestDeliverShipmentCommandHandler(t *testing.T) {
	t.Run("delivers and pushes the order", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, kernel.NewUUID(), order.Shipped)
		s, err := shipment.RestoreShipment(kernel.NewUUID(), o.ID(), shipment.Shipped, "TRK-ABCDEF123456", nil, nil)
		require.NoError(t, err)
		cmd, err := commands.NewDeliverShipmentCommand(s.ID(), admin(t))
		require.NoError(t, err)

		f := newShipmentFixture()
		f.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		f.shipments.On("Update", ctx, s).Return(nil).Once()
		f.orders.On("Update", ctx, o).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.notifier.On("Notify", mock.Anything, s.ID(), ports.NotificationDelivered).Return().Once()

		h := commands.NewDeliverShipmentCommandHandler(shipmentFactory{uow: f.uow}, services.NewFulfillment(), f.notifier)
		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, shipment.Delivered, result.Status())
		assert.NotNil(t, result.DeliveredAt())
		assert.Equal(t, order.Delivered, o.Status())
		f.notifier.AssertExpectations(t)
	})

	t.Run("pending shipment cannot be delivered", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, kernel.NewUUID(), order.Paid)
		s := pendingShipment(t, o.ID())
		cmd, err := commands.NewDeliverShipmentCommand(s.ID(), admin(t))
		require.NoError(t, err)

		f := newShipmentFixture()
		f.shipments.On("GetForUpdate", ctx, s.ID()).Return(s, nil).Once()
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

		h := commands.NewDeliverShipmentCommandHandler(shipmentFactory{uow: f.uow}, services.NewFulfillment(), f.notifier)
		_, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, shipment.Pending, s.Status())
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
