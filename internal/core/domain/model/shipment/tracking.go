package shipment

import (
	"strings"

	"github.com/google/uuid"
)

const trackingPrefix = "TRK-"

// TrackingNumber identifies a shipment to carriers and customers. Its format
// is opaque to callers; uniqueness is enforced by storage.
type TrackingNumber string

// TrackingNumberGenerator produces a fresh tracking number.
type TrackingNumberGenerator func() TrackingNumber

// NewTrackingNumber returns "TRK-" followed by 12 upper-case hex characters
// taken from a random UUID.
func NewTrackingNumber() TrackingNumber {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return TrackingNumber(trackingPrefix + strings.ToUpper(hex[:12]))
}

func (t TrackingNumber) IsEmpty() bool {
	return t == ""
}

func (t TrackingNumber) String() string {
	return string(t)
}
