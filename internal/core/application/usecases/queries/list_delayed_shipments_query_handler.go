package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// DelayedShipment is a Pending shipment older than the threshold.
type DelayedShipment struct {
	ShipmentView
	Age time.Duration
}

type ListDelayedShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListDelayedShipmentsQueryHandler(db *gorm.DB) ListDelayedShipmentsQueryHandler {
	return ListDelayedShipmentsQueryHandler{db: db}
}

// Handle returns the oldest shipments first.
func (h ListDelayedShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListDelayedShipmentsQuery,
) ([]DelayedShipment, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+shipmentColumns+`
		FROM shipments s
		WHERE s.status = ? AND s.created_at < ?
		ORDER BY s.created_at, s.id`, int(shipment.Pending), query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	delayed := make([]DelayedShipment, 0)
	for rows.Next() {
		view, scanErr := scanShipment(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		delayed = append(delayed, DelayedShipment{
			ShipmentView: view,
			Age:          query.Now().Sub(view.CreatedAt),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return delayed, nil
}
