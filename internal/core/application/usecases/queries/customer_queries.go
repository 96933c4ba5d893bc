package queries

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetCustomerQueryIsNotConstructed = errors.New(
		"GetCustomerQuery must be created via one of the NewGetCustomerBy... constructors",
	)
	ErrListCustomersQueryIsNotConstructed = errors.New(
		"ListCustomersQuery must be created via NewListCustomersQuery constructor",
	)
	ErrGetRecentCustomersQueryIsNotConstructed = errors.New(
		"GetRecentCustomersQuery must be created via NewGetRecentCustomersQuery constructor",
	)
	ErrCountCustomersQueryIsNotConstructed = errors.New(
		"CountCustomersQuery must be created via NewCountCustomersQuery constructor",
	)
)

// CustomerKey names the unique column a GetCustomerQuery looks up.
type CustomerKey string

const (
	CustomerKeyID         CustomerKey = "id"
	CustomerKeyEmail      CustomerKey = "email"
	CustomerKeyNationalID CustomerKey = "national_id"
)

// GetCustomerQuery loads one customer by id, email or national id.
type GetCustomerQuery struct {
	key   CustomerKey
	value any
	guard guard.ConstructorGuard
}

func NewGetCustomerByIDQuery(id kernel.UUID) (GetCustomerQuery, error) {
	if err := id.Validate(); err != nil {
		return GetCustomerQuery{}, errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	return GetCustomerQuery{key: CustomerKeyID, value: id, guard: guard.NewConstructorGuard()}, nil
}

func NewGetCustomerByEmailQuery(email string) (GetCustomerQuery, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return GetCustomerQuery{}, errs.NewValueIsRequiredError("email")
	}
	return GetCustomerQuery{key: CustomerKeyEmail, value: email, guard: guard.NewConstructorGuard()}, nil
}

func NewGetCustomerByNationalIDQuery(nationalID string) (GetCustomerQuery, error) {
	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" {
		return GetCustomerQuery{}, errs.NewValueIsRequiredError("nationalID")
	}
	return GetCustomerQuery{key: CustomerKeyNationalID, value: nationalID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCustomerQuery) Key() CustomerKey { return q.key }
func (q GetCustomerQuery) Value() any       { return q.value }

func (q GetCustomerQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerQueryIsNotConstructed)
}

// CustomerFilter narrows ListCustomersQuery. Empty fields do not filter. Name
// matches as a case-insensitive substring; city and state match case-insensitively.
type CustomerFilter struct {
	Name  string
	City  string
	State string
}

// ListCustomersQuery lists customers ordered by name.
type ListCustomersQuery struct {
	filter CustomerFilter
	guard  guard.ConstructorGuard
}

func NewListCustomersQuery(filter CustomerFilter) ListCustomersQuery {
	filter.Name = strings.TrimSpace(filter.Name)
	filter.City = strings.TrimSpace(filter.City)
	filter.State = strings.TrimSpace(filter.State)
	return ListCustomersQuery{filter: filter, guard: guard.NewConstructorGuard()}
}

func (q ListCustomersQuery) Filter() CustomerFilter { return q.filter }

func (q ListCustomersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomersQueryIsNotConstructed)
}

// GetRecentCustomersQuery returns the last limit customers registered.
type GetRecentCustomersQuery struct {
	limit int
	guard guard.ConstructorGuard
}

func NewGetRecentCustomersQuery(limit int) (GetRecentCustomersQuery, error) {
	if err := validateLimit(limit); err != nil {
		return GetRecentCustomersQuery{}, err
	}
	return GetRecentCustomersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRecentCustomersQuery) Limit() int { return q.limit }

func (q GetRecentCustomersQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentCustomersQueryIsNotConstructed)
}

type CountCustomersQuery struct {
	guard guard.ConstructorGuard
}

func NewCountCustomersQuery() CountCustomersQuery {
	return CountCustomersQuery{guard: guard.NewConstructorGuard()}
}

func (q CountCustomersQuery) Validate() error {
	return q.guard.Validate(ErrCountCustomersQueryIsNotConstructed)
}
