// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and read straight from the tables; every
// money figure a view exposes is computed by the database at read time.
package queries

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderView is the full read model of an order.
type OrderView struct {
	ID          kernel.UUID
	CustomerID  kernel.UUID
	Status      order.Status
	Items       []OrderItemView
	Total       kernel.Money
	Paid        kernel.Money
	Outstanding kernel.Money
	FullyPaid   bool
	Allocations []AllocationView
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderItemView struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
	Subtotal  kernel.Money
}

// AllocationView is one allocation row. PaymentStatus tells whether it
// still counts toward the order.
type AllocationView struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	PaymentID     kernel.UUID
	PaymentStatus payment.Status
	AppliedAmount kernel.Money
	CreatedAt     time.Time
}

// OrderSummary is a row of a customer's order list.
type OrderSummary struct {
	ID          kernel.UUID
	Status      order.Status
	Total       kernel.Money
	Paid        kernel.Money
	Outstanding kernel.Money
	CreatedAt   time.Time
}

// PaymentView is the read model of a payment with its allocations.
type PaymentView struct {
	ID          kernel.UUID
	Amount      kernel.Money
	Method      payment.Method
	Status      payment.Status
	Applied     kernel.Money
	Remaining   kernel.Money
	Allocations []AllocationView
	CreatedAt   time.Time
}

// PaymentSummary is a row of a payment list.
type PaymentSummary struct {
	ID        kernel.UUID
	Amount    kernel.Money
	Method    payment.Method
	Status    payment.Status
	Applied   kernel.Money
	Remaining kernel.Money
	CreatedAt time.Time
}

// ShipmentView is the read model of a shipment.
type ShipmentView struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	Status         shipment.Status
	TrackingNumber string
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CreatedAt      time.Time
}

// countedPaymentStatuses is bound with pq.Array into "status = ANY(?)".
func countedPaymentStatuses() any {
	statuses := payment.CountedStatuses()
	values := make([]int64, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, int64(s))
	}
	return pq.Array(values)
}

func toUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toMoney(d decimal.Decimal) (kernel.Money, error) {
	return kernel.NewMoney(d)
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
