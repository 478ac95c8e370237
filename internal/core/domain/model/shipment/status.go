package shipment

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
)

// Status is the shipment lifecycle: Pending -> Shipped -> Delivered.
// Delivered is terminal and Pending cannot skip to Delivered.
type Status int

const (
	UnknownStatus Status = iota
	Pending
	Shipped
	Delivered
)

//nolint:gochecknoglobals // fixed lookup table
var transitions = map[Status][]Status{
	Pending:   {Shipped},
	Shipped:   {Delivered},
	Delivered: {},
}

//nolint:gochecknoglobals // fixed lookup table
var statusNames = map[Status]string{
	UnknownStatus: "Unknown",
	Pending:       "Pending",
	Shipped:       "Shipped",
	Delivered:     "Delivered",
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != UnknownStatus && strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid shipment status", s))
}

func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
