// Package http exposes the application over JSON/HTTP with echo. Requests
// under /api/v1 carry the caller identity in the X-User-ID and X-User-Role
// headers and are validated against the embedded OpenAPI document.
package http

import (
	"context"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/model/shipment"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type (
	createOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	transitionOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderStatusCommand) (*order.Order, error)
	}
	createPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.CreatePaymentCommand) (*payment.Payment, error)
	}
	applyPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.ApplyPaymentCommand) (*payment.Payment, error)
	}
	settlePaymentHandler interface {
		Handle(ctx context.Context, cmd commands.SettlePaymentCommand) (*payment.Payment, error)
	}
	createShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.CreateShipmentCommand) (*shipment.Shipment, error)
	}
	shipShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.ShipShipmentCommand) (*shipment.Shipment, error)
	}
	deliverShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.DeliverShipmentCommand) (*shipment.Shipment, error)
	}

	getOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	listCustomerOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListCustomerOrdersQuery) ([]queries.OrderSummary, error)
	}
	getPaymentHandler interface {
		Handle(ctx context.Context, query queries.GetPaymentQuery) (queries.PaymentView, error)
	}
	listPaymentsHandler interface {
		Handle(ctx context.Context, query queries.ListPaymentsQuery) ([]queries.PaymentSummary, error)
	}
	listOrderShipmentsHandler interface {
		Handle(ctx context.Context, query queries.ListOrderShipmentsQuery) ([]queries.ShipmentView, error)
	}
	trackShipmentHandler interface {
		Handle(ctx context.Context, query queries.TrackShipmentQuery) (queries.ShipmentView, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	CreateOrder           createOrderHandler
	TransitionOrderStatus transitionOrderStatusHandler
	CreatePayment         createPaymentHandler
	ApplyPayment          applyPaymentHandler
	SettlePayment         settlePaymentHandler
	CreateShipment        createShipmentHandler
	ShipShipment          shipShipmentHandler
	DeliverShipment       deliverShipmentHandler

	GetOrder           getOrderHandler
	ListCustomerOrders listCustomerOrdersHandler
	GetPayment         getPaymentHandler
	ListPayments       listPaymentsHandler
	ListOrderShipments listOrderShipmentsHandler
	TrackShipment      trackShipmentHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *zap.Logger
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With(zap.String("component", "http")),
	}
}

// Register mounts all routes on e.
func (s *Server) Register(e *echo.Echo) error {
	doc, router, err := loadOpenAPI()
	if err != nil {
		return err
	}
	if err = registerSwaggerDoc(doc); err != nil {
		return err
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", OpenAPIDocument())
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", callerMiddleware, requestValidator(router))

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.TransitionOrderStatus)

	api.POST("/payments", s.CreatePayment)
	api.GET("/payments", s.ListPayments)
	api.GET("/payments/:id", s.GetPayment)
	api.POST("/payments/:id/apply", s.ApplyPayment)
	api.POST("/payments/:id/complete", s.CompletePayment)
	api.POST("/payments/:id/fail", s.FailPayment)

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments/by-order/:orderId", s.ListOrderShipments)
	api.GET("/shipments/track/:trackingNumber", s.TrackShipment)
	api.POST("/shipments/:id/ship", s.ShipShipment)
	api.POST("/shipments/:id/deliver", s.DeliverShipment)

	return nil
}
