package queries

import (
	"context"
	"errors"
	"strings"

	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

const productColumns = `id, name, description, price, quantity, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ProductQueryHandlers answers the product read queries.
type ProductQueryHandlers struct {
	db *gorm.DB
}

func NewProductQueryHandlers(db *gorm.DB) ProductQueryHandlers {
	return ProductQueryHandlers{db: db}
}

func (h ProductQueryHandlers) GetProduct(ctx context.Context, query GetProductQuery) (ProductView, error) {
	if err := query.Validate(); err != nil {
		return ProductView{}, err
	}

	var row productRow
	err := h.db.WithContext(ctx).
		Table("products").
		Select(productColumns).
		Where("id = ?", query.ProductID().UUID()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ProductView{}, errs.NewObjectNotFoundError("productID", query.ProductID())
	}
	if err != nil {
		return ProductView{}, err
	}
	return row.view(), nil
}

func (h ProductQueryHandlers) ListProducts(ctx context.Context, query ListProductsQuery) ([]ProductView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	f := query.Filter()
	tx := h.db.WithContext(ctx).Table("products").Select(productColumns)
	if f.Name != "" {
		tx = tx.Where("name ILIKE ?", "%"+escapeLike(f.Name)+"%")
	}
	if f.AvailableOnly {
		tx = tx.Where("quantity > 0")
	}

	var rows []productRow
	if err := tx.Order("name").Order("id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.view())
	}
	return views, nil
}

func (h ProductQueryHandlers) CountProducts(ctx context.Context, query CountProductsQuery) (ProductCounts, error) {
	if err := query.Validate(); err != nil {
		return ProductCounts{}, err
	}

	var counts ProductCounts
	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE quantity > 0) AS available FROM products`).
		Scan(&counts).Error
	if err != nil {
		return ProductCounts{}, err
	}
	return counts, nil
}
