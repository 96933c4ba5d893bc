package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/product"
	"ordering/internal/pkg/errs"
)

type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
	now        func() time.Time
}

func NewCreateProductCommandHandler(uowFactory ProductUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{uowFactory: uowFactory, now: time.Now}
}

func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := product.NewProduct(cmd.ProductID(), cmd.Details(), h.now())
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

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

// UpdateProductCommandHandler locks the product row so a concurrent reservation
// cannot interleave with the stock overwrite.
type UpdateProductCommandHandler struct {
	uowFactory ProductUoWFactory
	now        func() time.Time
}

func NewUpdateProductCommandHandler(uowFactory ProductUoWFactory) UpdateProductCommandHandler {
	return UpdateProductCommandHandler{uowFactory: uowFactory, now: time.Now}
}

func (h UpdateProductCommandHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*product.Product, error) {
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

	repo := uow.ProductRepository()

	p, err := repo.GetForUpdate(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}

	if err = p.Update(cmd.Details(), h.now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

// DeleteProductCommandHandler deletes products no order line refers to.
type DeleteProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewDeleteProductCommandHandler(uowFactory ProductUoWFactory) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{uowFactory: uowFactory}
}

func (h DeleteProductCommandHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
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

	repo := uow.ProductRepository()

	p, err := repo.GetForUpdate(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	referenced, err := uow.OrderRepository().ExistsForProduct(ctx, p.ID())
	if err != nil {
		return err
	}
	if referenced {
		return errs.NewInvalidStateError("product", "product is referenced by order items and cannot be deleted")
	}

	if err = repo.Delete(ctx, p.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
