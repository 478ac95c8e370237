package shipment_test

import (
	"regexp"
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/shipment"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTracking(value string) shipment.TrackingNumberGenerator {
	return func() shipment.TrackingNumber { return shipment.TrackingNumber(value) }
}

func newShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return s
}

func TestNewTrackingNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^TRK-[0-9A-F]{12}$`)
	seen := make(map[shipment.TrackingNumber]struct{})

	for range 1000 {
		tn := shipment.NewTrackingNumber()
		require.Regexp(t, pattern, tn.String())
		_, dup := seen[tn]
		require.False(t, dup)
		seen[tn] = struct{}{}
	}
}

func TestNewShipment(t *testing.T) {
	s := newShipment(t)

	require.NoError(t, s.Validate())
	assert.Equal(t, shipment.Pending, s.Status())
	assert.True(t, s.TrackingNumber().IsEmpty())
	assert.Nil(t, s.ShippedAt())
	assert.Nil(t, s.DeliveredAt())

	_, err := shipment.NewShipment(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)
}

func TestShipment_Ship(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("should assign tracking number and timestamp", func(t *testing.T) {
		s := newShipment(t)

		require.NoError(t, s.Ship(fixedTracking("TRK-1"), at))

		assert.Equal(t, shipment.Shipped, s.Status())
		assert.Equal(t, shipment.TrackingNumber("TRK-1"), s.TrackingNumber())
		require.NotNil(t, s.ShippedAt())
		assert.Equal(t, at, *s.ShippedAt())
	})

	t.Run("should keep an existing tracking number", func(t *testing.T) {
		s, err := shipment.RestoreShipment(kernel.NewUUID(), kernel.NewUUID(), shipment.Pending, "TRK-KEEP", nil, nil)
		require.NoError(t, err)

		require.NoError(t, s.Ship(fixedTracking("TRK-NEW"), at))

		assert.Equal(t, shipment.TrackingNumber("TRK-KEEP"), s.TrackingNumber())
	})

	t.Run("second ship fails and leaves state unchanged", func(t *testing.T) {
		s := newShipment(t)
		require.NoError(t, s.Ship(fixedTracking("TRK-1"), at))

		err := s.Ship(fixedTracking("TRK-2"), at.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, shipment.Shipped, s.Status())
		assert.Equal(t, shipment.TrackingNumber("TRK-1"), s.TrackingNumber())
		assert.Equal(t, at, *s.ShippedAt())
	})
}

func TestShipment_Deliver(t *testing.T) {
	at := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)

	t.Run("should reject delivering a pending shipment", func(t *testing.T) {
		s := newShipment(t)

		err := s.Deliver(at)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "Pending")
		assert.Equal(t, shipment.Pending, s.Status())
		assert.Nil(t, s.DeliveredAt())
	})

	t.Run("should deliver a shipped shipment once", func(t *testing.T) {
		s := newShipment(t)
		require.NoError(t, s.Ship(fixedTracking("TRK-1"), at.Add(-time.Hour)))

		require.NoError(t, s.Deliver(at))
		assert.Equal(t, shipment.Delivered, s.Status())
		assert.Equal(t, at, *s.DeliveredAt())

		require.ErrorIs(t, s.Deliver(at), errs.ErrInvalidTransition)
		require.ErrorIs(t, s.Ship(fixedTracking("TRK-2"), at), errs.ErrInvalidTransition)
	})
}

func TestStatus_Table(t *testing.T) {
	assert.True(t, shipment.Pending.CanTransitionTo(shipment.Shipped))
	assert.True(t, shipment.Shipped.CanTransitionTo(shipment.Delivered))
	assert.False(t, shipment.Pending.CanTransitionTo(shipment.Delivered))
	assert.False(t, shipment.Delivered.CanTransitionTo(shipment.Shipped))
	assert.False(t, shipment.UnknownStatus.CanTransitionTo(shipment.Pending))

	parsed, err := shipment.ParseStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, shipment.Shipped, parsed)
	require.Error(t, shipment.UnknownStatus.Validate())
}
