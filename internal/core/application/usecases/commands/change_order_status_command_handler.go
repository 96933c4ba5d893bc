package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler applies a status transition. Cancelling locks
// and restocks every product on the order in the same transaction.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.InventoryReconciler
	now        func() time.Time
}

func NewChangeOrderStatusCommandHandler(uowFactory UoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewInventoryReconciler(),
		now:        time.Now,
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	productRepo := uow.ProductRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	var (
		products map[kernel.UUID]*product.Product
		touched  []*product.Product
	)
	if cmd.Status() == order.Cancelled && o.Status().CanTransitionTo(order.Cancelled) {
		products, touched, err = lockOrderProducts(ctx, productRepo, o)
		if err != nil {
			return nil, err
		}
	}

	if err = h.reconciler.ChangeStatus(o, cmd.Status(), products, h.now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = updateProducts(ctx, productRepo, touched); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
