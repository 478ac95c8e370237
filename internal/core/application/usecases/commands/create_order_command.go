package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order on behalf of the calling customer.
// Unit prices are captured in the items and never change afterwards.
//
// Example:
//
//	item, _ := order.NewItem(productID, 2, kernel.MustMoney("19.99"))
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), caller, []order.Item{item})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	caller  kernel.Caller
	items   []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order id, the caller and that at least
// one item is given.
func NewCreateOrderCommand(orderID kernel.UUID, caller kernel.Caller, items []order.Item) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCaller(caller),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Caller() kernel.Caller {
	return c.caller
}

// Items returns a copy of the requested line items.
func (c CreateOrderCommand) Items() []order.Item {
	out := make([]order.Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCaller(caller kernel.Caller) error {
	if err := caller.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("caller", err)
	}

	c.caller = caller
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}
