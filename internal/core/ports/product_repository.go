package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates.
//
// Stock changes go through GetForUpdate so that two transactions reserving the
// same product are serialized by the row lock instead of losing an update.
type ProductRepository interface {
	// Add persists a new product.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product, including its quantity on hand.
	Update(ctx context.Context, aggregate *product.Product) error

	// Delete removes the product row.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a product by id without locking.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate retrieves a product by id and locks its row (SELECT ... FOR UPDATE)
	// until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*product.Product, error)
}
