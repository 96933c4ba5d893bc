package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
)

// CreateOrderCommandHandler places orders.
//
// Inside one transaction it loads the customer, locks every requested product,
// reserves stock for each line at the product's current price and stores the
// order together with the new stock levels. Any failure (unknown customer or
// product, insufficient stock) rolls everything back, so no partial reservation
// survives.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	o, err := handler.Handle(ctx, cmd)
//	var stockErr *errs.InsufficientStockError
//	if errors.As(err, &stockErr) {
//	    // stockErr.ProductName has too little stock
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.InventoryReconciler
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewInventoryReconciler(),
		now:        time.Now,
	}
}

// Handle places the order and returns it with its items and total.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	customerRepo := uow.CustomerRepository()
	productRepo := uow.ProductRepository()
	orderRepo := uow.OrderRepository()

	buyer, err := customerRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	shipping := cmd.ShippingAddress()
	if shipping.IsEmpty() {
		shipping = buyer.Address()
	}

	o, err := order.NewOrder(cmd.OrderID(), buyer.ID(), shipping, cmd.Notes(), h.now())
	if err != nil {
		return nil, err
	}

	lines := cmd.Lines()
	productIDs := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		productIDs = append(productIDs, line.ProductID)
	}
	products, reserved, err := lockProducts(ctx, productRepo, productIDs)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		if _, err = h.reconciler.PlaceItem(o, products[line.ProductID], line.Quantity); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = updateProducts(ctx, productRepo, reserved); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
