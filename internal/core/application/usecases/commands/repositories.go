// Package commands contains the write side of the ordering service: one command
// and one handler per business operation. Every handler validates its command,
// runs inside a single unit of work (Begin, deferred Rollback, Commit) and returns
// the resulting aggregate or a typed error from internal/pkg/errs.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each group of handlers needs.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CustomerRepoFactory provides the customer repository bound to the transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// ProductRepoFactory provides the product repository bound to the transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderRepoFactory provides the order repository bound to the transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CustomerUoW is used by customer handlers. Orders are read to block deletion
	// of customers that still own orders.
	CustomerUoW interface {
		TxManager
		CustomerRepoFactory
		OrderRepoFactory
	}

	// CustomerUoWFactory creates customer units of work.
	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	// ProductUoW is used by product handlers. Orders are read to block deletion of
	// products still referenced by order lines.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
		OrderRepoFactory
	}

	// ProductUoWFactory creates product units of work.
	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// UoW spans customers, products and orders. Order handlers use it because every
	// order operation touches product stock.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return nil, err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   p, err := uow.ProductRepository().GetForUpdate(ctx, productID)
	//   // ... mutate through services.InventoryReconciler
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CustomerRepoFactory
		ProductRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates order units of work.
	UoWFactory interface {
		Create() UoW
	}
)
