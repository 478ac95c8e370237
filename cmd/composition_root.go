package cmd

import (
	httpadapter "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/notify"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/services"
	"ordering/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	engine      *services.AllocationEngine
	fulfillment *services.Fulfillment
	notifier    *notify.LogNotifier
	logger      *zap.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) *CompositionRoot {
	return &CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB, config.LockTimeout),
		engine:      services.NewAllocationEngine(),
		fulfillment: services.NewFulfillment(),
		notifier:    notify.NewLogNotifier(logger),
		logger:      logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) allocationUoWFactory() commands.AllocationUoWFactory {
	return FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreatePaymentCommandHandler() commands.CreatePaymentCommandHandler {
	return commands.NewCreatePaymentCommandHandler(c.paymentUoWFactory())
}

func (c *CompositionRoot) CreateSettlePaymentCommandHandler() commands.SettlePaymentCommandHandler {
	return commands.NewSettlePaymentCommandHandler(c.paymentUoWFactory())
}

func (c *CompositionRoot) CreateApplyPaymentCommandHandler() commands.ApplyPaymentCommandHandler {
	return commands.NewApplyPaymentCommandHandler(c.allocationUoWFactory(), c.engine)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory(), c.fulfillment)
}

func (c *CompositionRoot) CreateShipShipmentCommandHandler() commands.ShipShipmentCommandHandler {
	return commands.NewShipShipmentCommandHandler(c.shipmentUoWFactory(), c.fulfillment, c.notifier)
}

func (c *CompositionRoot) CreateDeliverShipmentCommandHandler() commands.DeliverShipmentCommandHandler {
	return commands.NewDeliverShipmentCommandHandler(c.shipmentUoWFactory(), c.fulfillment, c.notifier)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPaymentQueryHandler() queries.GetPaymentQueryHandler {
	return queries.NewGetPaymentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPaymentsQueryHandler() queries.ListPaymentsQueryHandler {
	return queries.NewListPaymentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrderShipmentsQueryHandler() queries.ListOrderShipmentsQueryHandler {
	return queries.NewListOrderShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackShipmentQueryHandler() queries.TrackShipmentQueryHandler {
	return queries.NewTrackShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDelayedShipmentsQueryHandler() queries.ListDelayedShipmentsQueryHandler {
	return queries.NewListDelayedShipmentsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		TransitionOrderStatus: c.CreateTransitionOrderStatusCommandHandler(),
		CreatePayment:         c.CreateCreatePaymentCommandHandler(),
		ApplyPayment:          c.CreateApplyPaymentCommandHandler(),
		SettlePayment:         c.CreateSettlePaymentCommandHandler(),
		CreateShipment:        c.CreateCreateShipmentCommandHandler(),
		ShipShipment:          c.CreateShipShipmentCommandHandler(),
		DeliverShipment:       c.CreateDeliverShipmentCommandHandler(),

		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListCustomerOrders: c.CreateListCustomerOrdersQueryHandler(),
		GetPayment:         c.CreateGetPaymentQueryHandler(),
		ListPayments:       c.CreateListPaymentsQueryHandler(),
		ListOrderShipments: c.CreateListOrderShipmentsQueryHandler(),
		TrackShipment:      c.CreateTrackShipmentQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewDelayedShipmentJob(
			c.CreateListDelayedShipmentsQueryHandler(),
			c.config.DelayedShipmentThreshold,
			c.config.DelayedShipmentSchedule,
			c.logger,
		),
	)
}

// Notifier is exposed so main can wait for dispatches in flight on
// shutdown.
func (c *CompositionRoot) Notifier() *notify.LogNotifier {
	return c.notifier
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncAllocationUoWFactory func() commands.AllocationUoW

func (f FuncAllocationUoWFactory) Create() commands.AllocationUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
