package commands

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

// ExpirePendingOrdersCommandHandler cancels stale PENDING orders, one transaction
// per order, so one failing order does not block the rest. The listing runs
// outside those transactions, so each order is re-checked under its row lock:
// orders that were confirmed, cancelled or deleted in the meantime are skipped.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory UoWFactory
	reconciler services.InventoryReconciler
	now        func() time.Time
}

func NewExpirePendingOrdersCommandHandler(uowFactory UoWFactory) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewInventoryReconciler(),
		now:        time.Now,
	}
}

// Handle returns the number of orders cancelled and the joined per-order failures.
func (h ExpirePendingOrdersCommandHandler) Handle(ctx context.Context, cmd ExpirePendingOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.uowFactory.Create().OrderRepository().ListPendingIDsBefore(ctx, cmd.Cutoff(), cmd.Limit())
	if err != nil {
		return 0, err
	}

	var (
		cancelled int
		failures  []error
	)
	for _, id := range ids {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err())
			break
		}

		expired, expireErr := h.expire(ctx, id, cmd.Cutoff())
		if expireErr != nil {
			if errors.Is(expireErr, errs.ErrObjectNotFound) {
				continue
			}
			failures = append(failures, expireErr)
			continue
		}
		if expired {
			cancelled++
		}
	}

	return cancelled, errors.Join(failures...)
}

// expire cancels one order and restocks its products. It reports false without
// touching anything when the locked order is no longer PENDING before cutoff.
func (h ExpirePendingOrdersCommandHandler) expire(ctx context.Context, id kernel.UUID, cutoff time.Time) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	productRepo := uow.ProductRepository()

	o, err := orderRepo.GetForUpdate(ctx, id)
	if err != nil {
		return false, err
	}
	if !o.IsPendingSince(cutoff) {
		return false, nil
	}

	products, touched, err := lockOrderProducts(ctx, productRepo, o)
	if err != nil {
		return false, err
	}

	if err = h.reconciler.ChangeStatus(o, order.Cancelled, products, h.now()); err != nil {
		return false, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}
	if err = updateProducts(ctx, productRepo, touched); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
