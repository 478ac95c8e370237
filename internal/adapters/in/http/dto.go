package http

import (
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/model/shipment"
)

type NewOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

type NewOrder struct {
	Items []NewOrderItem `json:"items"`
}

type OrderStatusChange struct {
	Status string `json:"status"`
}

type NewPayment struct {
	Amount string `json:"amount"`
	Method string `json:"method"`
}

type ApplyPayment struct {
	OrderIDs []string `json:"orderIds"`
	Amounts  []string `json:"amounts,omitempty"`
}

type NewShipment struct {
	OrderID string `json:"orderId"`
}

type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Subtotal  string `json:"subtotal"`
}

type Allocation struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	PaymentID     string    `json:"paymentId"`
	PaymentStatus string    `json:"paymentStatus,omitempty"`
	AppliedAmount string    `json:"appliedAmount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Order struct {
	ID          string       `json:"id"`
	CustomerID  string       `json:"customerId,omitempty"`
	Status      string       `json:"status"`
	Items       []OrderItem  `json:"items,omitempty"`
	Total       string       `json:"total"`
	Paid        string       `json:"paid"`
	Outstanding string       `json:"outstanding"`
	FullyPaid   bool         `json:"fullyPaid"`
	Allocations []Allocation `json:"allocations,omitempty"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}

type Payment struct {
	ID          string       `json:"id"`
	Amount      string       `json:"amount"`
	Method      string       `json:"method"`
	Status      string       `json:"status"`
	Applied     string       `json:"applied"`
	Remaining   string       `json:"remaining"`
	Allocations []Allocation `json:"allocations,omitempty"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
}

type Shipment struct {
	ID             string     `json:"id"`
	OrderID        string     `json:"orderId"`
	Status         string     `json:"status"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	ShippedAt      *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
}

func orderFromDomain(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().String(),
			Subtotal:  item.Subtotal().String(),
		})
	}

	return Order{
		ID:          o.ID().String(),
		CustomerID:  o.CustomerID().String(),
		Status:      o.Status().String(),
		Items:       items,
		Total:       o.Total().String(),
		Paid:        o.PaidAmount().String(),
		Outstanding: o.Outstanding().String(),
		FullyPaid:   o.IsFullyPaid(),
	}
}

func orderFromView(v queries.OrderView) Order {
	items := make([]OrderItem, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
			Subtotal:  item.Subtotal.String(),
		})
	}

	return Order{
		ID:          v.ID.String(),
		CustomerID:  v.CustomerID.String(),
		Status:      v.Status.String(),
		Items:       items,
		Total:       v.Total.String(),
		Paid:        v.Paid.String(),
		Outstanding: v.Outstanding.String(),
		FullyPaid:   v.FullyPaid,
		Allocations: allocationsFromViews(v.Allocations),
		CreatedAt:   &v.CreatedAt,
		UpdatedAt:   &v.UpdatedAt,
	}
}

func orderFromSummary(v queries.OrderSummary) Order {
	return Order{
		ID:          v.ID.String(),
		Status:      v.Status.String(),
		Total:       v.Total.String(),
		Paid:        v.Paid.String(),
		Outstanding: v.Outstanding.String(),
		FullyPaid:   v.Outstanding.IsZero(),
		CreatedAt:   &v.CreatedAt,
	}
}

func allocationsFromViews(views []queries.AllocationView) []Allocation {
	allocations := make([]Allocation, 0, len(views))
	for _, a := range views {
		allocations = append(allocations, Allocation{
			ID:            a.ID.String(),
			OrderID:       a.OrderID.String(),
			PaymentID:     a.PaymentID.String(),
			PaymentStatus: a.PaymentStatus.String(),
			AppliedAmount: a.AppliedAmount.String(),
			CreatedAt:     a.CreatedAt,
		})
	}
	return allocations
}

func paymentFromDomain(p *payment.Payment) Payment {
	allocations := make([]Allocation, 0, len(p.Allocations()))
	for _, a := range p.Allocations() {
		allocations = append(allocations, Allocation{
			ID:            a.ID().String(),
			OrderID:       a.OrderID().String(),
			PaymentID:     a.PaymentID().String(),
			AppliedAmount: a.AppliedAmount().String(),
			CreatedAt:     a.CreatedAt(),
		})
	}

	return Payment{
		ID:          p.ID().String(),
		Amount:      p.Amount().String(),
		Method:      p.Method().String(),
		Status:      p.Status().String(),
		Applied:     p.AmountApplied().String(),
		Remaining:   p.Remaining().String(),
		Allocations: allocations,
	}
}

func paymentFromView(v queries.PaymentView) Payment {
	return Payment{
		ID:          v.ID.String(),
		Amount:      v.Amount.String(),
		Method:      v.Method.String(),
		Status:      v.Status.String(),
		Applied:     v.Applied.String(),
		Remaining:   v.Remaining.String(),
		Allocations: allocationsFromViews(v.Allocations),
		CreatedAt:   &v.CreatedAt,
	}
}

func paymentFromSummary(v queries.PaymentSummary) Payment {
	return Payment{
		ID:        v.ID.String(),
		Amount:    v.Amount.String(),
		Method:    v.Method.String(),
		Status:    v.Status.String(),
		Applied:   v.Applied.String(),
		Remaining: v.Remaining.String(),
		CreatedAt: &v.CreatedAt,
	}
}

func shipmentFromDomain(s *shipment.Shipment) Shipment {
	return Shipment{
		ID:             s.ID().String(),
		OrderID:        s.OrderID().String(),
		Status:         s.Status().String(),
		TrackingNumber: s.TrackingNumber().String(),
		ShippedAt:      s.ShippedAt(),
		DeliveredAt:    s.DeliveredAt(),
	}
}

func shipmentFromView(v queries.ShipmentView) Shipment {
	return Shipment{
		ID:             v.ID.String(),
		OrderID:        v.OrderID.String(),
		Status:         v.Status.String(),
		TrackingNumber: v.TrackingNumber,
		ShippedAt:      v.ShippedAt,
		DeliveredAt:    v.DeliveredAt,
		CreatedAt:      &v.CreatedAt,
	}
}
