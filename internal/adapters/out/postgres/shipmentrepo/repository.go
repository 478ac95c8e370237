package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/adapters/out/postgres/pgerr"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/shipment"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrTrackingNumberTaken is returned when the unique index rejects a
// tracking number, which only happens when two transactions generated the
// same number at the same time.
var ErrTrackingNumberTaken = errors.New("tracking number already in use")

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return r.mapWriteError(aggregate, err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves status, tracking number and timestamps.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":          dto.Status,
			"tracking_number": dto.TrackingNumber,
			"shipped_at":      dto.ShippedAt,
			"delivered_at":    dto.DeliveredAt,
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return r.mapWriteError(aggregate, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.load(ctx, id, false)
}

// GetForUpdate retrieves a shipment and locks its row.
func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.load(ctx, id, true)
}

func (r *GormShipmentRepository) TrackingNumberExists(ctx context.Context, tn shipment.TrackingNumber) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("tracking_number = ?", tn.String()).
		Count(&count).Error
	if err != nil {
		return false, pgerr.Classify(err)
	}
	return count > 0, nil
}

func (r *GormShipmentRepository) load(ctx context.Context, id kernel.UUID, lock bool) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto ShipmentDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, pgerr.Classify(err)
	}

	return toDomain(dto)
}

func (r *GormShipmentRepository) mapWriteError(aggregate *shipment.Shipment, err error) error {
	if pgerr.IsUniqueViolation(err, TrackingNumberIndex) {
		return errs.NewRuleViolationError(ErrTrackingNumberTaken, "shipment", aggregate.ID(), aggregate.TrackingNumber().String())
	}
	return pgerr.Classify(err)
}
