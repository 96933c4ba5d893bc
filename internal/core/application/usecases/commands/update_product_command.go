package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/pkg/guard"
)

var ErrUpdateProductCommandIsNotConstructed = errors.New(
	"UpdateProductCommand must be created via NewUpdateProductCommand constructor",
)

// UpdateProductCommand replaces the details of a product, stock level included.
// Lines already on orders keep the price they captured.
type UpdateProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	details   product.Details

	guard guard.ConstructorGuard
}

func NewUpdateProductCommand(productID kernel.UUID, details product.Details) (UpdateProductCommand, error) {
	if err := productID.Validate(); err != nil {
		return UpdateProductCommand{}, err
	}

	return UpdateProductCommand{
		productID: productID,
		details:   details,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateProductCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductCommandIsNotConstructed)
}

func (c UpdateProductCommand) ProductID() kernel.UUID   { return c.productID }
func (c UpdateProductCommand) Details() product.Details { return c.details }
