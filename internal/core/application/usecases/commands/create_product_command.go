package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand adds a product to the catalogue with its initial stock.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	details   product.Details

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(productID kernel.UUID, details product.Details) (CreateProductCommand, error) {
	if err := productID.Validate(); err != nil {
		return CreateProductCommand{}, err
	}

	return CreateProductCommand{
		productID: productID,
		details:   details,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) ProductID() kernel.UUID   { return c.productID }
func (c CreateProductCommand) Details() product.Details { return c.details }
