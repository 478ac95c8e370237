// Package orderrepo persists order aggregates: one row in orders and one row
// per line item in order_items. The paid amount is never stored; it is summed
// from allocations on every load.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table.
type OrderDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status     int             `gorm:"not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order. Position keeps the items in the
// order they were given.
type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) (OrderDTO, []OrderItemDTO) {
	dto := OrderDTO{
		ID:         o.ID().Bytes(),
		CustomerID: o.CustomerID().Bytes(),
		Total:      o.Total().Amount(),
		Status:     int(o.Status()),
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   dto.ID,
			ProductID: item.ProductID().Bytes(),
			Position:  i,
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}
	return dto, items
}

func toDomain(dto OrderDTO, itemDTOs []OrderItemDTO, paid decimal.Decimal) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		productID, idErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(productID, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}
	paidAmount, err := kernel.NewMoney(paid)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, customerID, items, total, paidAmount, order.Status(dto.Status))
}
