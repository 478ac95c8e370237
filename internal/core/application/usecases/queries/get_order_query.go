package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with items, balances and allocations.
// Callers who neither own the order nor are privileged get NotFound, the
// same answer as for a missing order.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, caller)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // missing or not yours
//	}
//	fmt.Printf("%s outstanding\n", view.Outstanding)
type GetOrderQuery struct {
	orderID kernel.UUID
	caller  kernel.Caller

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, caller kernel.Caller) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if err := caller.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("caller", err)
	}

	return GetOrderQuery{
		orderID: orderID,
		caller:  caller,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Caller() kernel.Caller {
	return q.caller
}
