package order

import (
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Item is an order line. The unit price is captured when the order is
// created and never changes afterwards.
type Item struct {
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money
}

// MaxQuantity bounds a single line.
const MaxQuantity = 1_000_000

// NewItem validates the product reference, a quantity between 1 and
// MaxQuantity and a positive unit price.
func NewItem(productID kernel.UUID, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is less than 1", quantity),
		)
	}
	if quantity > MaxQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	if !unitPrice.IsPositive() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"unit price",
			fmt.Errorf("%s is not greater than 0", unitPrice),
		)
	}
	return Item{productID: productID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (i Item) ProductID() kernel.UUID {
	return i.productID
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal is quantity × unit price.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}
