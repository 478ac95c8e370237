package order

import (
	"fmt"
	"slices"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──┬──> Paid ──┬──> Shipped ──> Delivered
//	          │           │
//	          └───────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. The transitions table below is the
// only place legal moves are defined; allocation, fulfillment and manual
// status updates all go through TransitionTo.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status; the order accepts payment allocations.
	Pending

	// Paid is reached when allocations cover the order total.
	Paid

	// Shipped is set when the first shipment of the order leaves.
	Shipped

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

// transitions maps every valid status to its legal successors.
//
//nolint:gochecknoglobals // fixed lookup table
var transitions = map[Status][]Status{
	Pending:   {Paid, Cancelled},
	Paid:      {Shipped, Cancelled},
	Shipped:   {Delivered},
	Delivered: {},
	Cancelled: {},
}

//nolint:gochecknoglobals // fixed lookup table
var statusNames = map[Status]string{
	Unknown:   "Unknown",
	Pending:   "Pending",
	Paid:      "Paid",
	Shipped:   "Shipped",
	Delivered: "Delivered",
	Cancelled: "Cancelled",
}

// ParseStatus accepts a status name in any letter case, e.g. "paid" or "Paid".
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != Unknown && strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the known lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name, "Unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Successors returns a copy of the legal next statuses.
func (s Status) Successors() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether target is a legal successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the move is legal, or an
// errs.InvalidTransitionError otherwise. It has no side effects; the caller
// persists the new status inside its own transaction.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError("order", nil, s, target)
	}
	return target, nil
}

// fulfilmentChain is the forward path an order takes when nothing goes
// wrong. Cancelled is off the chain.
//
//nolint:gochecknoglobals // fixed lookup table
var fulfilmentChain = []Status{Pending, Paid, Shipped, Delivered}

// HasReached reports whether s is target or comes after it on the
// Pending → Paid → Shipped → Delivered chain, e.g. Delivered has reached
// Shipped. Cancelled has only reached Cancelled.
func (s Status) HasReached(target Status) bool {
	if s == target {
		return true
	}
	at, want := slices.Index(fulfilmentChain, s), slices.Index(fulfilmentChain, target)
	return at >= 0 && want >= 0 && at > want
}
