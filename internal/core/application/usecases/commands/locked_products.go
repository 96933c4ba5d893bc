package commands

import (
	"context"
	"slices"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/core/ports"
)

// lockProducts loads the given products with a row lock in ascending id order,
// whatever order ids arrive in, so two transactions over the same products
// cannot deadlock. Duplicate ids are locked once. The returned slice keeps the
// lock order so updates are issued deterministically.
func lockProducts(
	ctx context.Context,
	repo ports.ProductRepository,
	ids []kernel.UUID,
) (map[kernel.UUID]*product.Product, []*product.Product, error) {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, kernel.UUID.Compare)
	sorted = slices.Compact(sorted)

	byID := make(map[kernel.UUID]*product.Product, len(sorted))
	ordered := make([]*product.Product, 0, len(sorted))
	for _, id := range sorted {
		p, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		byID[p.ID()] = p
		ordered = append(ordered, p)
	}
	return byID, ordered, nil
}

// lockOrderProducts locks every product referenced by o's lines.
func lockOrderProducts(
	ctx context.Context,
	repo ports.ProductRepository,
	o *order.Order,
) (map[kernel.UUID]*product.Product, []*product.Product, error) {
	ids := make([]kernel.UUID, 0, len(o.Items()))
	for _, item := range o.Items() {
		ids = append(ids, item.ProductID())
	}
	return lockProducts(ctx, repo, ids)
}

func updateProducts(ctx context.Context, repo ports.ProductRepository, products []*product.Product) error {
	for _, p := range products {
		if err := repo.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
