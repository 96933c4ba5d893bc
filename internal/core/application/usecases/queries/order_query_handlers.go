package queries

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const orderColumns = `id, customer_id, status, total,
	shipping_street, shipping_city, shipping_state, shipping_zip_code,
	notes, order_date, payment_date, shipping_date, delivery_date`

// OrderQueryHandlers answers the order read queries.
type OrderQueryHandlers struct {
	db *gorm.DB
}

func NewOrderQueryHandlers(db *gorm.DB) OrderQueryHandlers {
	return OrderQueryHandlers{db: db}
}

// GetOrder returns the order with its lines in insertion order, or an
// errs.ObjectNotFoundError.
func (h OrderQueryHandlers) GetOrder(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var row orderRow
	err := h.db.WithContext(ctx).
		Table("orders").
		Select(orderColumns).
		Where("id = ?", query.OrderID().UUID()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return OrderView{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return OrderView{}, err
	}

	views, err := h.withItems(ctx, []orderRow{row})
	if err != nil {
		return OrderView{}, err
	}
	return views[0], nil
}

// ListOrders returns matching orders newest first.
func (h OrderQueryHandlers) ListOrders(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).Table("orders").Select(orderColumns)
	if id := query.Filter().CustomerID; id != nil {
		tx = tx.Where("customer_id = ?", id.UUID())
	}
	if status := query.Filter().Status; status != nil {
		tx = tx.Where("status = ?", int(*status))
	}

	var rows []orderRow
	if err := tx.Order("order_date DESC").Order("id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return h.withItems(ctx, rows)
}

// GetRecentOrders returns the latest orders by order date.
func (h OrderQueryHandlers) GetRecentOrders(ctx context.Context, query GetRecentOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).
		Table("orders").
		Select(orderColumns).
		Order("order_date DESC").
		Order("id").
		Limit(query.Limit()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return h.withItems(ctx, rows)
}

// GetPendingOrders returns PENDING orders oldest first.
func (h OrderQueryHandlers) GetPendingOrders(ctx context.Context, query GetPendingOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).
		Table("orders").
		Select(orderColumns).
		Where("status = ?", int(order.Pending)).
		Order("order_date ASC").
		Order("id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return h.withItems(ctx, rows)
}

// GetOrderStats counts orders per status.
func (h OrderQueryHandlers) GetOrderStats(ctx context.Context, query GetOrderStatsQuery) (OrderStats, error) {
	if err := query.Validate(); err != nil {
		return OrderStats{}, err
	}

	var counts []struct {
		Status order.Status
		Count  int64
	}
	err := h.db.WithContext(ctx).
		Raw(`SELECT status, COUNT(*) AS count FROM orders GROUP BY status`).
		Scan(&counts).Error
	if err != nil {
		return OrderStats{}, err
	}

	stats := OrderStats{ByStatus: make(map[string]int64, len(order.Statuses()))}
	for _, s := range order.Statuses() {
		stats.ByStatus[s.String()] = 0
	}
	for _, c := range counts {
		stats.ByStatus[c.Status.String()] = c.Count
		stats.Total += c.Count
	}
	return stats, nil
}

// withItems loads the lines of every order in one round trip and keeps the order
// of rows.
func (h OrderQueryHandlers) withItems(ctx context.Context, rows []orderRow) ([]OrderView, error) {
	views := make([]OrderView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	var items []orderItemRow
	err := h.db.WithContext(ctx).
		Table("order_items").
		Select("id, order_id, product_id, quantity, unit_price, subtotal").
		Where("order_id IN ?", ids).
		Order("order_id").
		Order("position").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	byOrder := make(map[uuid.UUID][]OrderItemView, len(rows))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], OrderItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(moneyDigits),
			Subtotal:  item.Subtotal.StringFixed(moneyDigits),
		})
	}

	for _, r := range rows {
		views = append(views, r.view(byOrder[r.ID]))
	}
	return views, nil
}
