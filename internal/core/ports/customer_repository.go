// Package ports defines the contracts between the ordering core and its adapters:
// repositories, the unit of work and the order event publisher.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customer aggregates.
// Lookups that match nothing return an errs.ObjectNotFoundError.
type CustomerRepository interface {
	// Add persists a new customer. A duplicate email or national id surfaces as an
	// errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists changes to an existing customer.
	Update(ctx context.Context, aggregate *customer.Customer) error

	// Delete removes the customer row.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a customer by id.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// FindByEmail retrieves the customer owning email.
	FindByEmail(ctx context.Context, email string) (*customer.Customer, error)

	// FindByNationalID retrieves the customer owning nationalID.
	FindByNationalID(ctx context.Context, nationalID string) (*customer.Customer, error)
}
