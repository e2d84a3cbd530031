package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money represents a monetary value with exact decimal arithmetic.
// Money is immutable - all operations return new values.
// Rounding is never applied implicitly; callers round with Round2 at the
// point where an amount is reported.
type Money struct {
	amount decimal.Decimal
}

// NewMoney wraps a decimal amount.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewMoneyFromString parses a decimal string such as "19.99".
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid decimal format: %s", s)
	}
	return Money{amount: d}, nil
}

// NewMoneyFromFloat converts a float64. Prefer NewMoneyFromString when the
// source is textual.
func NewMoneyFromFloat(f float64) Money {
	return Money{amount: decimal.NewFromFloat(f)}
}

// Zero returns a Money value representing zero.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Subtract returns m - other.
func (m Money) Subtract(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Multiply returns m scaled by factor.
func (m Money) Multiply(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// MultiplyInt returns m scaled by an integer quantity.
func (m Money) MultiplyInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// Divide returns m / divisor. The divisor must be non-zero.
func (m Money) Divide(divisor decimal.Decimal) Money {
	return Money{amount: m.amount.Div(divisor)}
}

// Round2 rounds to two decimals, half away from zero.
func (m Money) Round2() Money {
	return Money{amount: m.amount.Round(2)}
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
}

// Cmp compares m and other: -1, 0 or +1.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// LessThan returns true if m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// GreaterThan returns true if m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// Equals returns true if both amounts are numerically equal.
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the amount with two decimals, e.g. "19.99".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// StringFixed returns the amount with the given number of decimals.
func (m Money) StringFixed(places int32) string {
	return m.amount.StringFixed(places)
}
