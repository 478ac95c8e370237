package paymentrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/adapters/out/postgres/pgerr"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements ports.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new payment. A payment is created without allocations.
func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Classify(err)
	}
	if err := r.insertAllocations(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the status and inserts allocations created since the
// payment was loaded.
func (r *GormPaymentRepository) Update(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&PaymentDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"status":     int(aggregate.Status()),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payment", aggregate.ID().String())
	}

	if err := r.insertAllocations(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPaymentRepository) insertAllocations(ctx context.Context, aggregate *payment.Payment) error {
	unsaved := aggregate.UnsavedAllocations()
	if len(unsaved) == 0 {
		return nil
	}

	dtos := make([]AllocationDTO, 0, len(unsaved))
	for _, a := range unsaved {
		dtos = append(dtos, allocationFromDomain(a))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		if pgerr.IsUniqueViolation(err, AllocationPairIndex) {
			return errs.NewRuleViolationError(payment.ErrDuplicateAllocation, "payment", aggregate.ID(), err.Error())
		}
		return pgerr.Classify(err)
	}

	aggregate.MarkAllocationsSaved()
	return nil
}

// Get retrieves a payment with its allocations.
func (r *GormPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	return r.load(ctx, id, false)
}

// GetForUpdate retrieves a payment with its allocations and locks its row.
func (r *GormPaymentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	return r.load(ctx, id, true)
}

func (r *GormPaymentRepository) load(ctx context.Context, id kernel.UUID, lock bool) (*payment.Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	query := db
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto PaymentDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", id.String())
		}
		return nil, pgerr.Classify(err)
	}

	var allocations []AllocationDTO
	if err := db.Where("payment_id = ?", dto.ID).Order("created_at, id").Find(&allocations).Error; err != nil {
		return nil, pgerr.Classify(err)
	}

	return toDomain(dto, allocations)
}
