package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// MaxLimit caps how many rows a single list query returns.
const MaxLimit = 100

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
	ErrGetRecentOrdersQueryIsNotConstructed = errors.New(
		"GetRecentOrdersQuery must be created via NewGetRecentOrdersQuery constructor",
	)
	ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
		"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
	)
	ErrGetOrderStatsQueryIsNotConstructed = errors.New(
		"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
	)
)

func validateLimit(limit int) error {
	if limit < 1 || limit > MaxLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit)
	}
	return nil
}

// GetOrderQuery loads one order with its lines.
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderFilter narrows ListOrdersQuery. Nil fields do not filter.
type OrderFilter struct {
	CustomerID *kernel.UUID
	Status     *order.Status
}

// ListOrdersQuery lists orders newest first, optionally filtered by customer and status.
//
//	status := order.Pending
//	query, err := NewListOrdersQuery(OrderFilter{Status: &status})
type ListOrdersQuery struct {
	filter OrderFilter
	guard  guard.ConstructorGuard
}

func NewListOrdersQuery(filter OrderFilter) (ListOrdersQuery, error) {
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if filter.CustomerID != nil {
		if err := filter.CustomerID.Validate(); err != nil {
			return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("customerID", err)
		}
	}
	return ListOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Filter() OrderFilter { return q.filter }

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// GetRecentOrdersQuery returns the latest limit orders by order date.
type GetRecentOrdersQuery struct {
	limit int
	guard guard.ConstructorGuard
}

func NewGetRecentOrdersQuery(limit int) (GetRecentOrdersQuery, error) {
	if err := validateLimit(limit); err != nil {
		return GetRecentOrdersQuery{}, err
	}
	return GetRecentOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRecentOrdersQuery) Limit() int { return q.limit }

func (q GetRecentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentOrdersQueryIsNotConstructed)
}

// GetPendingOrdersQuery returns PENDING orders, oldest first, so the ones closest
// to expiry come first.
type GetPendingOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPendingOrdersQuery() GetPendingOrdersQuery {
	return GetPendingOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// GetOrderStatsQuery counts orders overall and per status.
type GetOrderStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderStatsQuery() GetOrderStatsQuery {
	return GetOrderStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// OrderStats has an entry for every status, zero when no order is in it.
type OrderStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}
