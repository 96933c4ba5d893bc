package commands

import (
	"errors"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrCreateCustomerCommandIsNotConstructed = errors.New(
	"CreateCustomerCommand must be created via NewCreateCustomerCommand constructor",
)

// CreateCustomerCommand registers a new customer. Profile rules are enforced by the
// aggregate; uniqueness of email and national id by the handler.
type CreateCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	profile    customer.Profile

	guard guard.ConstructorGuard
}

func NewCreateCustomerCommand(customerID kernel.UUID, profile customer.Profile) (CreateCustomerCommand, error) {
	if err := customerID.Validate(); err != nil {
		return CreateCustomerCommand{}, err
	}

	return CreateCustomerCommand{
		customerID: customerID,
		profile:    profile,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomerCommandIsNotConstructed)
}

func (c CreateCustomerCommand) CustomerID() kernel.UUID   { return c.customerID }
func (c CreateCustomerCommand) Profile() customer.Profile { return c.profile }
