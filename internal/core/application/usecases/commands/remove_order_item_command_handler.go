package commands

import (
	"context"
	"fmt"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

// RemoveOrderItemCommandHandler drops a line from a pending order and releases
// its quantity. The last line cannot be removed; delete the order instead.
type RemoveOrderItemCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.InventoryReconciler
}

func NewRemoveOrderItemCommandHandler(uowFactory UoWFactory) RemoveOrderItemCommandHandler {
	return RemoveOrderItemCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewInventoryReconciler(),
	}
}

func (h RemoveOrderItemCommandHandler) Handle(
	ctx context.Context,
	cmd RemoveOrderItemCommand,
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

	if o.Status() != order.Pending {
		return nil, errs.NewInvalidStateError("order",
			fmt.Sprintf("can only remove items while PENDING, status is %s", o.Status()))
	}

	item, found := o.FindItem(cmd.ItemID())
	if !found {
		return nil, errs.NewObjectNotFoundError("item", cmd.ItemID().String())
	}

	p, err := productRepo.GetForUpdate(ctx, item.ProductID())
	if err != nil {
		return nil, err
	}

	if _, err = h.reconciler.RemoveItem(o, item.ID(), p); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = productRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
