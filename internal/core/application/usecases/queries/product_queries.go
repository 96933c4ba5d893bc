package queries

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetProductQueryIsNotConstructed = errors.New(
		"GetProductQuery must be created via NewGetProductQuery constructor",
	)
	ErrListProductsQueryIsNotConstructed = errors.New(
		"ListProductsQuery must be created via NewListProductsQuery constructor",
	)
	ErrCountProductsQueryIsNotConstructed = errors.New(
		"CountProductsQuery must be created via NewCountProductsQuery constructor",
	)
)

type GetProductQuery struct {
	productID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetProductQuery(productID kernel.UUID) (GetProductQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetProductQuery{}, errs.NewValueIsRequiredErrorWithCause("productID", err)
	}
	return GetProductQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductQuery) ProductID() kernel.UUID { return q.productID }

func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

// ProductFilter narrows ListProductsQuery. Name matches as a case-insensitive
// substring; AvailableOnly keeps products with stock on hand.
type ProductFilter struct {
	Name          string
	AvailableOnly bool
}

// ListProductsQuery lists products ordered by name.
type ListProductsQuery struct {
	filter ProductFilter
	guard  guard.ConstructorGuard
}

func NewListProductsQuery(filter ProductFilter) ListProductsQuery {
	filter.Name = strings.TrimSpace(filter.Name)
	return ListProductsQuery{filter: filter, guard: guard.NewConstructorGuard()}
}

func (q ListProductsQuery) Filter() ProductFilter { return q.filter }

func (q ListProductsQuery) Validate() error {
	return q.guard.Validate(ErrListProductsQueryIsNotConstructed)
}

type CountProductsQuery struct {
	guard guard.ConstructorGuard
}

func NewCountProductsQuery() CountProductsQuery {
	return CountProductsQuery{guard: guard.NewConstructorGuard()}
}

func (q CountProductsQuery) Validate() error {
	return q.guard.Validate(ErrCountProductsQueryIsNotConstructed)
}

// ProductCounts splits the catalogue by stock on hand.
type ProductCounts struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
}
