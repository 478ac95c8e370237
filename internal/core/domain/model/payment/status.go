package payment

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status is the settlement state of a captured payment.
//
//	Pending ──┬──> Completed
//	          └──> Failed
//
// Allocation does not change the status; only the administrative
// complete/fail actions do.
type Status int

const (
	UnknownStatus Status = iota
	Pending
	Completed
	Failed
)

//nolint:gochecknoglobals // fixed lookup table
var transitions = map[Status][]Status{
	Pending:   {Completed, Failed},
	Completed: {},
	Failed:    {},
}

//nolint:gochecknoglobals // fixed lookup table
var statusNames = map[Status]string{
	UnknownStatus: "Unknown",
	Pending:       "Pending",
	Completed:     "Completed",
	Failed:        "Failed",
}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != UnknownStatus && strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid payment status", s))
}

func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// CountsTowardOrders reports whether allocations of a payment in this status
// contribute to an order's paid amount. Failed payments do not.
func (s Status) CountsTowardOrders() bool {
	return s == Pending || s == Completed
}

// CountedStatuses lists every status for which CountsTowardOrders holds.
func CountedStatuses() []Status {
	counted := make([]Status, 0, 2)
	for _, s := range []Status{Pending, Completed, Failed} {
		if s.CountsTowardOrders() {
			counted = append(counted, s)
		}
	}
	return counted
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
