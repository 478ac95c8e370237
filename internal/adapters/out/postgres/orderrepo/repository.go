package orderrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/adapters/out/postgres/pgerr"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paidAmountSQL sums the allocations of an order whose payment still counts.
const paidAmountSQL = `
	SELECT COALESCE(SUM(a.applied_amount), 0)
	FROM allocations a
	JOIN payments p ON p.id = a.payment_id
	WHERE a.order_id = ? AND p.status IN ?`

// CountedPaymentStatuses are the payment statuses whose allocations count
// toward an order's paid amount.
func CountedPaymentStatuses() []int {
	statuses := payment.CountedStatuses()
	counted := make([]int, 0, len(statuses))
	for _, s := range statuses {
		counted = append(counted, int(s))
	}
	return counted
}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, items := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Create(&dto).Error; err != nil {
		return pgerr.Classify(err)
	}
	if err := db.Create(&items).Error; err != nil {
		return pgerr.Classify(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the order status. Items and total never change.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"status":     int(aggregate.Status()),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return pgerr.Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, id, false)
}

// GetForUpdate retrieves an order by ID and locks its row.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, id, true)
}

func (r *GormOrderRepository) load(ctx context.Context, id kernel.UUID, lock bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	query := db
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Classify(err)
	}

	var items []OrderItemDTO
	if err := db.Where("order_id = ?", dto.ID).Order("position").Find(&items).Error; err != nil {
		return nil, pgerr.Classify(err)
	}

	var paid decimal.Decimal
	if err := db.Raw(paidAmountSQL, dto.ID, CountedPaymentStatuses()).Row().Scan(&paid); err != nil {
		return nil, pgerr.Classify(err)
	}

	return toDomain(dto, items, paid)
}
