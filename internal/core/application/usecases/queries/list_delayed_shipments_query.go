package queries

import (
	"errors"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrListDelayedShipmentsQueryIsNotConstructed = errors.New(
	"ListDelayedShipmentsQuery must be created via NewListDelayedShipmentsQuery constructor",
)

// ListDelayedShipmentsQuery finds shipments still Pending after threshold,
// measured from now. It backs the periodic delayed-shipment check and takes
// no caller.
type ListDelayedShipmentsQuery struct {
	threshold time.Duration
	now       time.Time

	guard guard.ConstructorGuard
}

func NewListDelayedShipmentsQuery(threshold time.Duration, now time.Time) (ListDelayedShipmentsQuery, error) {
	if threshold <= 0 {
		return ListDelayedShipmentsQuery{}, errs.NewValueIsOutOfRangeError("threshold", threshold, time.Duration(1), "unbounded")
	}
	if now.IsZero() {
		return ListDelayedShipmentsQuery{}, errs.NewValueIsRequiredError("now")
	}

	return ListDelayedShipmentsQuery{
		threshold: threshold,
		now:       now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListDelayedShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListDelayedShipmentsQueryIsNotConstructed)
}

// Cutoff is the creation time before which a Pending shipment is delayed.
func (q ListDelayedShipmentsQuery) Cutoff() time.Time {
	return q.now.Add(-q.threshold)
}

func (q ListDelayedShipmentsQuery) Now() time.Time {
	return q.now
}
