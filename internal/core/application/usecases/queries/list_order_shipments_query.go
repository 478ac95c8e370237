package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrListOrderShipmentsQueryIsNotConstructed = errors.New(
	"ListOrderShipmentsQuery must be created via NewListOrderShipmentsQuery constructor",
)

// ListOrderShipmentsQuery lists the shipments of one order, oldest first.
type ListOrderShipmentsQuery struct {
	orderID kernel.UUID
	caller  kernel.Caller

	guard guard.ConstructorGuard
}

func NewListOrderShipmentsQuery(orderID kernel.UUID, caller kernel.Caller) (ListOrderShipmentsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListOrderShipmentsQuery{}, err
	}
	if err := caller.Validate(); err != nil {
		return ListOrderShipmentsQuery{}, errs.NewValueIsRequiredErrorWithCause("caller", err)
	}

	return ListOrderShipmentsQuery{
		orderID: orderID,
		caller:  caller,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrderShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListOrderShipmentsQueryIsNotConstructed)
}

func (q ListOrderShipmentsQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q ListOrderShipmentsQuery) Caller() kernel.Caller {
	return q.caller
}
