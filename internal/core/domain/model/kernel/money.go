package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits every amount carries.
const MoneyScale = 2

// maxMoney is the largest amount a numeric(12,2) column holds.
var maxMoney = decimal.RequireFromString("9999999999.99")

// Money is a non-negative amount with two fractional digits.
// The zero value is 0.00.
type Money struct {
	amount decimal.Decimal
}

// NewMoney rejects negative amounts, amounts above MaxMoney and amounts with
// more than two fractional digits.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	if amount.GreaterThan(maxMoney) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0.00", maxMoney.StringFixed(MoneyScale))
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s has more than %d fractional digits", amount.String(), MoneyScale),
		)
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "200.00".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// MustMoney parses s and panics on failure. Intended for constants and tests.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MaxMoney returns 9999999999.99, the largest storable amount. Sums built
// with Add or Times are not bounded and must be checked with ExceedsMax.
func MaxMoney() Money {
	return Money{amount: maxMoney}
}

// ZeroMoney returns 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount exposes the underlying decimal for persistence and transport.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// SaturatingSub returns m - other, or zero when other exceeds m.
func (m Money) SaturatingSub(other Money) Money {
	if other.amount.GreaterThanOrEqual(m.amount) {
		return ZeroMoney()
	}
	return Money{amount: m.amount.Sub(other.amount)}
}

// Times multiplies the amount by a non-negative quantity.
func (m Money) Times(quantity int) Money {
	if quantity <= 0 {
		return ZeroMoney()
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// ExceedsMax reports whether m is larger than MaxMoney.
func (m Money) ExceedsMax() bool {
	return m.amount.GreaterThan(maxMoney)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// MinMoney returns the smaller of a and b.
func MinMoney(a, b Money) Money {
	if a.amount.LessThanOrEqual(b.amount) {
		return a
	}
	return b
}

// SumMoney adds all amounts.
func SumMoney(amounts ...Money) Money {
	total := ZeroMoney()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
