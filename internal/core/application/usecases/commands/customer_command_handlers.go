package commands

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// CreateCustomerCommandHandler registers customers with unique email and national id.
type CreateCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
	now        func() time.Time
}

func NewCreateCustomerCommandHandler(uowFactory CustomerUoWFactory) CreateCustomerCommandHandler {
	return CreateCustomerCommandHandler{uowFactory: uowFactory, now: time.Now}
}

func (h CreateCustomerCommandHandler) Handle(
	ctx context.Context,
	cmd CreateCustomerCommand,
) (*customer.Customer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c, err := customer.NewCustomer(cmd.CustomerID(), cmd.Profile(), h.now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CustomerRepository()
	if err = ensureUniqueCustomer(ctx, repo, c); err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// UpdateCustomerCommandHandler replaces a customer's profile and stamps updatedAt.
type UpdateCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
	now        func() time.Time
}

func NewUpdateCustomerCommandHandler(uowFactory CustomerUoWFactory) UpdateCustomerCommandHandler {
	return UpdateCustomerCommandHandler{uowFactory: uowFactory, now: time.Now}
}

func (h UpdateCustomerCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCustomerCommand,
) (*customer.Customer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CustomerRepository()

	c, err := repo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	if err = c.Update(cmd.Profile(), h.now()); err != nil {
		return nil, err
	}

	if err = ensureUniqueCustomer(ctx, repo, c); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// DeleteCustomerCommandHandler deletes customers that own no orders.
type DeleteCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
}

func NewDeleteCustomerCommandHandler(uowFactory CustomerUoWFactory) DeleteCustomerCommandHandler {
	return DeleteCustomerCommandHandler{uowFactory: uowFactory}
}

func (h DeleteCustomerCommandHandler) Handle(ctx context.Context, cmd DeleteCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CustomerRepository()

	c, err := repo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	hasOrders, err := uow.OrderRepository().ExistsForCustomer(ctx, c.ID())
	if err != nil {
		return err
	}
	if hasOrders {
		return errs.NewInvalidStateError("customer", "customer has orders and cannot be deleted")
	}

	if err = repo.Delete(ctx, c.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ensureUniqueCustomer rejects c when another customer already holds its email or
// national id. A unique index backs the check for concurrent writers.
func ensureUniqueCustomer(ctx context.Context, repo ports.CustomerRepository, c *customer.Customer) error {
	if err := ensureNotTaken(c.ID(), "email", c.Email(), func() (*customer.Customer, error) {
		return repo.FindByEmail(ctx, c.Email())
	}); err != nil {
		return err
	}

	return ensureNotTaken(c.ID(), "national id", c.NationalID(), func() (*customer.Customer, error) {
		return repo.FindByNationalID(ctx, c.NationalID())
	})
}

func ensureNotTaken(self kernel.UUID, field, value string, find func() (*customer.Customer, error)) error {
	holder, err := find()
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	case err != nil:
		return err
	case holder.ID().IsEqual(self):
		return nil
	default:
		return errs.NewObjectAlreadyExistsError(field, value)
	}
}
