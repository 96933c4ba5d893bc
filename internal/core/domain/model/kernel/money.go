package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits kept for amounts.
const moneyScale = 2

// Money is a non-negative monetary amount with two fractional digits.
//
// The zero value is a valid amount of 0.00. Arithmetic never produces a negative
// amount: Add only sums non-negative values and Multiply rejects negative factors.
//
//	price, _ := kernel.MoneyFromString("100.00")
//	subtotal, _ := price.Multiply(2) // 200.00
type Money struct {
	amount decimal.Decimal
}

// Zero returns an amount of 0.00.
func Zero() Money {
	return Money{}
}

// NewMoney rounds amount to two digits and rejects negative values.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is negative", amount.String()))
	}
	return Money{amount: amount.Round(moneyScale)}, nil
}

// MoneyFromString parses a decimal string such as "19.90".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Multiply returns m × factor. Negative factors are rejected.
func (m Money) Multiply(factor int) (Money, error) {
	if factor < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("factor", factor, 0, "unbounded")
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}, nil
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Decimal exposes the amount for persistence mappers.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

// MarshalText encodes the amount as its two-digit string, so JSON carries "400.00".
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
