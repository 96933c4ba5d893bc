package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates. An order is
// always read and written together with its items.
type OrderRepository interface {
	// Add persists a new order and its items. The order must contain at least one item.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order row and synchronizes its items: new lines are
	// inserted, changed lines updated and lines no longer on the order deleted.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes the order; its items are removed with it.
	Delete(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order with its items and locks the order row.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListPendingIDsBefore returns up to limit ids of PENDING orders placed before
	// cutoff, oldest first.
	ListPendingIDsBefore(ctx context.Context, cutoff time.Time, limit int) ([]kernel.UUID, error)

	// ExistsForCustomer reports whether any order belongs to customerID.
	ExistsForCustomer(ctx context.Context, customerID kernel.UUID) (bool, error)

	// ExistsForProduct reports whether any order line references productID.
	ExistsForProduct(ctx context.Context, productID kernel.UUID) (bool, error)
}
