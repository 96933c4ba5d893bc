package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
)

// AddOrderItemCommandHandler reserves stock for a new or grown order line.
// Growing an existing line keeps its captured unit price and checks stock for the
// added quantity only.
type AddOrderItemCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.InventoryReconciler
}

func NewAddOrderItemCommandHandler(uowFactory UoWFactory) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewInventoryReconciler(),
	}
}

// Handle returns the updated order and the line that was added or grown.
func (h AddOrderItemCommandHandler) Handle(
	ctx context.Context,
	cmd AddOrderItemCommand,
) (*order.Order, *order.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	productRepo := uow.ProductRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}

	p, err := productRepo.GetForUpdate(ctx, cmd.ProductID())
	if err != nil {
		return nil, nil, err
	}

	item, err := h.reconciler.PlaceItem(o, p, cmd.Quantity())
	if err != nil {
		return nil, nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, nil, err
	}
	if err = productRepo.Update(ctx, p); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return o, item, nil
}
