package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderNotPending is returned when an allocation targets an order that
	// already left the Pending status.
	ErrOrderNotPending = errors.New("order is not pending")

	// ErrAmountExceedsBalance is returned when an allocation is larger than the
	// order's outstanding balance.
	ErrAmountExceedsBalance = errors.New("amount exceeds order outstanding balance")

	// ErrDuplicateProduct is returned when two lines reference the same product.
	ErrDuplicateProduct = errors.New("duplicate product in order")
)

// Order is the aggregate root for a customer's purchase.
//
// Order follows these invariants:
//   - Has a valid identifier and an owning customer
//   - Has at least one line item, each product at most once
//   - total is the sum of line subtotals, computed once and persisted
//   - paid never exceeds total through RecordPayment
//   - status only changes through the transition table
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	items      []Item
	total      kernel.Money

	// paid is the sum of allocations whose payment is Pending or Completed.
	// Repositories compute it from the allocation rows on every load.
	paid kernel.Money

	status Status

	isConstructed bool
}

// NewOrder creates a Pending order and computes its total from the items.
// Every item has a positive price, so a new order always has something
// outstanding.
//
//	item, _ := order.NewItem(productID, 2, kernel.MustMoney("100.00"))
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.Item{item})
//	// o.Total() == 200.00, o.Status() == order.Pending
func NewOrder(id kernel.UUID, customerID kernel.UUID, items []Item) (*Order, error) {
	o := &Order{
		status:        Pending,
		paid:          kernel.ZeroMoney(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.total = computeTotal(o.items)
	if o.total.ExceedsMax() {
		return nil, errs.NewValueIsOutOfRangeError("total", o.total, "0.01", kernel.MaxMoney())
	}
	return o, nil
}

// RestoreOrder rebuilds an order from persistence. The stored total is kept
// as is rather than recomputed from the items.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	total kernel.Money,
	paid kernel.Money,
	status Status,
) (*Order, error) {
	o := &Order{
		total:         total,
		paid:          paid,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owner of the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) Total() kernel.Money {
	return o.total
}

// PaidAmount returns the sum of allocations on non-failed payments.
func (o *Order) PaidAmount() kernel.Money {
	return o.paid
}

// Outstanding returns total minus paid, never below zero.
func (o *Order) Outstanding() kernel.Money {
	return o.total.SaturatingSub(o.paid)
}

// IsFullyPaid reports paid >= total.
func (o *Order) IsFullyPaid() bool {
	return o.paid.GreaterThanOrEqual(o.total)
}

func (o *Order) Status() Status {
	return o.status
}

// RecordPayment adds an allocated amount to the paid total.
//
// Business rules:
//   - the order must be Pending
//   - the amount must be positive
//   - the amount must not exceed the outstanding balance
//
// RecordPayment does not change the status; the allocation engine checks
// IsFullyPaid afterwards and calls TransitionTo(Paid).
func (o *Order) RecordPayment(amount kernel.Money) error {
	if o.status != Pending {
		return errs.NewRuleViolationError(ErrOrderNotPending, "order", o.id, "status is "+o.status.String())
	}
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	if outstanding := o.Outstanding(); amount.GreaterThan(outstanding) {
		return errs.NewRuleViolationError(
			ErrAmountExceedsBalance,
			"order",
			o.id,
			fmt.Sprintf("amount %s, outstanding %s", amount, outstanding),
		)
	}

	o.paid = o.paid.Add(amount)
	return nil
}

// TransitionTo moves the order to target when the transition table allows it.
func (o *Order) TransitionTo(target Status) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return errs.NewInvalidTransitionError("order", o.id, o.status, target)
	}

	o.status = next
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.ProductID().Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", err)
		}
		if _, ok := seen[item.ProductID()]; ok {
			return errs.NewRuleViolationError(ErrDuplicateProduct, "product", item.ProductID(), "")
		}
		seen[item.ProductID()] = struct{}{}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func computeTotal(items []Item) kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
