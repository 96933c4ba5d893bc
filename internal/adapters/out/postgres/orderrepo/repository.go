package orderrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/adapters/out/postgres/pgerr"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := errors.Join(aggregate.Validate(), aggregate.ValidateItems()); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the order row and synchronises order_items with the aggregate:
// lines no longer present are deleted, the rest are upserted by id.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := errors.Join(aggregate.Validate(), aggregate.ValidateItems()); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Select("*").Omit("Items").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	keep := make([]uuid.UUID, 0, len(dto.Items))
	for _, item := range dto.Items {
		keep = append(keep, item.ID)
	}
	if err := db.Where("order_id = ? AND id NOT IN ?", dto.ID, keep).Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"position", "quantity", "unit_price", "subtotal"}),
	}).Create(&dto.Items).Error; err != nil {
		return pgerr.Translate(err, "order_items", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the order; its items go with it through ON DELETE CASCADE.
func (r *GormOrderRepository) Delete(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", aggregate.ID().UUID())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves an order and locks its row until the transaction ends, so
// concurrent status changes and item edits on the same order serialise.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		First(&dto, "id = ?", id.UUID()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListPendingIDsBefore returns up to limit PENDING orders placed before cutoff, oldest first.
func (r *GormOrderRepository) ListPendingIDsBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("status = ? AND order_date < ?", int(order.Pending), cutoff).
		Order("order_date").
		Limit(limit).
		Pluck("id", &raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		kid, err := kernel.FromGoogleUUID(id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, kid)
	}
	return ids, nil
}

// ExistsForCustomer reports whether the customer owns at least one order.
func (r *GormOrderRepository) ExistsForCustomer(ctx context.Context, customerID kernel.UUID) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM orders WHERE customer_id = ?)", customerID)
}

// ExistsForProduct reports whether any order line references the product.
func (r *GormOrderRepository) ExistsForProduct(ctx context.Context, productID kernel.UUID) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = ?)", productID)
}

func (r *GormOrderRepository) exists(ctx context.Context, query string, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var found bool
	if err := r.db.WithContext(ctx).Raw(query, id.UUID()).Scan(&found).Error; err != nil {
		return false, err
	}
	return found, nil
}
