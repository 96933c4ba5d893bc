package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/core/domain/services"
)

// DeleteOrderCommandHandler deletes an order. A PENDING order gives its reserved
// quantities back first; a CANCELLED order was restocked on cancellation.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.InventoryReconciler
	now        func() time.Time
}

func NewDeleteOrderCommandHandler(uowFactory UoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewInventoryReconciler(),
		now:        time.Now,
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	productRepo := uow.ProductRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	var (
		products map[kernel.UUID]*product.Product
		touched  []*product.Product
	)
	if o.Status() == order.Pending {
		products, touched, err = lockOrderProducts(ctx, productRepo, o)
		if err != nil {
			return err
		}
	}

	if err = h.reconciler.Delete(o, products, h.now()); err != nil {
		return err
	}

	if err = updateProducts(ctx, productRepo, touched); err != nil {
		return err
	}
	if err = orderRepo.Delete(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
