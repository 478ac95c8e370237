package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrListPaymentsQueryIsNotConstructed = errors.New(
	"ListPaymentsQuery must be created via NewListPaymentsQuery constructor",
)

// ListPaymentsQuery lists payments, newest first. A privileged caller sees
// every payment; anyone else sees the payments allocated to at least one of
// their orders. An empty status filter returns every status.
type ListPaymentsQuery struct {
	statuses []payment.Status
	caller   kernel.Caller

	guard guard.ConstructorGuard
}

func NewListPaymentsQuery(statuses []payment.Status, caller kernel.Caller) (ListPaymentsQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListPaymentsQuery{}, errs.NewValueIsRequiredErrorWithCause("caller", err)
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListPaymentsQuery{}, err
		}
	}

	return ListPaymentsQuery{
		statuses: append([]payment.Status(nil), statuses...),
		caller:   caller,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrListPaymentsQueryIsNotConstructed)
}

func (q ListPaymentsQuery) Statuses() []payment.Status {
	return append([]payment.Status(nil), q.statuses...)
}

func (q ListPaymentsQuery) Caller() kernel.Caller {
	return q.caller
}
