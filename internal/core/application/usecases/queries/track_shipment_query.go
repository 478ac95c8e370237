package queries

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrTrackShipmentQueryIsNotConstructed = errors.New(
	"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
)

// TrackShipmentQuery looks a shipment up by tracking number.
type TrackShipmentQuery struct {
	trackingNumber string
	caller         kernel.Caller

	guard guard.ConstructorGuard
}

// NewTrackShipmentQuery upper-cases the tracking number, so "trk-..." finds
// "TRK-...".
func NewTrackShipmentQuery(trackingNumber string, caller kernel.Caller) (TrackShipmentQuery, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	if trackingNumber == "" {
		return TrackShipmentQuery{}, errs.NewValueIsRequiredError("trackingNumber")
	}
	if err := caller.Validate(); err != nil {
		return TrackShipmentQuery{}, errs.NewValueIsRequiredErrorWithCause("caller", err)
	}

	return TrackShipmentQuery{
		trackingNumber: trackingNumber,
		caller:         caller,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

func (q TrackShipmentQuery) TrackingNumber() string {
	return q.trackingNumber
}

func (q TrackShipmentQuery) Caller() kernel.Caller {
	return q.caller
}
