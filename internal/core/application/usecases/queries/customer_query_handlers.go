package queries

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

const customerColumns = `id, name, email, phone, national_id,
	street, city, state, zip_code, created_at, updated_at`

// CustomerQueryHandlers answers the customer read queries.
type CustomerQueryHandlers struct {
	db *gorm.DB
}

func NewCustomerQueryHandlers(db *gorm.DB) CustomerQueryHandlers {
	return CustomerQueryHandlers{db: db}
}

// GetCustomer returns the customer matching the query key, or an errs.ObjectNotFoundError.
func (h CustomerQueryHandlers) GetCustomer(ctx context.Context, query GetCustomerQuery) (CustomerView, error) {
	if err := query.Validate(); err != nil {
		return CustomerView{}, err
	}

	value := query.Value()
	if id, ok := value.(kernel.UUID); ok {
		value = id.UUID()
	}

	var row customerRow
	err := h.db.WithContext(ctx).
		Table("customers").
		Select(customerColumns).
		Where(string(query.Key())+" = ?", value).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CustomerView{}, errs.NewObjectNotFoundError(string(query.Key()), query.Value())
	}
	if err != nil {
		return CustomerView{}, err
	}
	return row.view(), nil
}

// ListCustomers returns matching customers ordered by name.
func (h CustomerQueryHandlers) ListCustomers(ctx context.Context, query ListCustomersQuery) ([]CustomerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	f := query.Filter()
	tx := h.db.WithContext(ctx).Table("customers").Select(customerColumns)
	if f.Name != "" {
		tx = tx.Where("name ILIKE ?", "%"+escapeLike(f.Name)+"%")
	}
	if f.City != "" {
		tx = tx.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.State != "" {
		tx = tx.Where("state = UPPER(?)", f.State)
	}

	var rows []customerRow
	if err := tx.Order("name").Order("id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return customerViews(rows), nil
}

// GetRecentCustomers returns the newest customers first.
func (h CustomerQueryHandlers) GetRecentCustomers(
	ctx context.Context,
	query GetRecentCustomersQuery,
) ([]CustomerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []customerRow
	err := h.db.WithContext(ctx).
		Table("customers").
		Select(customerColumns).
		Order("created_at DESC").
		Order("id").
		Limit(query.Limit()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return customerViews(rows), nil
}

func (h CustomerQueryHandlers) CountCustomers(ctx context.Context, query CountCustomersQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := h.db.WithContext(ctx).Table("customers").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func customerViews(rows []customerRow) []CustomerView {
	views := make([]CustomerView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.view())
	}
	return views
}
