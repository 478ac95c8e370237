package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
	"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
)

// ListCustomerOrdersQuery lists a customer's orders, newest first. An empty
// status filter returns every order.
type ListCustomerOrdersQuery struct {
	customerID kernel.UUID
	statuses   []order.Status
	caller     kernel.Caller

	guard guard.ConstructorGuard
}

// NewListCustomerOrdersQuery rejects a caller listing another customer's
// orders unless the caller is privileged.
func NewListCustomerOrdersQuery(
	customerID kernel.UUID,
	statuses []order.Status,
	caller kernel.Caller,
) (ListCustomerOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return ListCustomerOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	if err := caller.Validate(); err != nil {
		return ListCustomerOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("caller", err)
	}
	if !caller.CanAccess(customerID) {
		return ListCustomerOrdersQuery{}, errs.NewAccessDeniedError("customer", customerID.String())
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListCustomerOrdersQuery{}, err
		}
	}

	return ListCustomerOrdersQuery{
		customerID: customerID,
		statuses:   append([]order.Status(nil), statuses...),
		caller:     caller,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

func (q ListCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q ListCustomerOrdersQuery) Statuses() []order.Status {
	return append([]order.Status(nil), q.statuses...)
}
