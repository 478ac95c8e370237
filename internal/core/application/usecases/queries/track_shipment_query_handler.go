package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrackShipmentQueryHandler struct {
	db *gorm.DB
}

func NewTrackShipmentQueryHandler(db *gorm.DB) TrackShipmentQueryHandler {
	return TrackShipmentQueryHandler{db: db}
}

// Handle reports NotFound to callers who do not own the shipment's order,
// so tracking numbers cannot be probed.
func (h TrackShipmentQueryHandler) Handle(ctx context.Context, query TrackShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT `+shipmentColumns+`, o.customer_id
		FROM shipments s
		JOIN orders o ON o.id = s.order_id
		WHERE s.tracking_number = ?`, query.TrackingNumber()).Row()

	var customerID uuid.UUID
	view, err := scanShipment(row, &customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ShipmentView{}, errs.NewObjectNotFoundError("shipment", query.TrackingNumber())
		}
		return ShipmentView{}, err
	}

	owner, err := toUUID(customerID)
	if err != nil {
		return ShipmentView{}, err
	}
	if !query.Caller().CanAccess(owner) {
		return ShipmentView{}, errs.NewObjectNotFoundError("shipment", query.TrackingNumber())
	}
	return view, nil
}
