package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with an optional currency marker. The
// currency is whatever symbol or code was attached to the matched token; it
// may be empty when the text carried a bare number.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

// NewMoney creates a Money from a decimal amount and currency marker.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// NewMoneyFromFloat creates a Money from a float64. Use sparingly; float64
// can introduce precision errors.
func NewMoneyFromFloat(amount float64, currency string) Money {
	return Money{Amount: decimal.NewFromFloat(amount), Currency: currency}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsNegative reports whether the amount is negative.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// HasCurrency reports whether a currency symbol or code was attached.
func (m Money) HasCurrency() bool {
	return m.Currency != ""
}

// Equal reports whether two Money values have the same amount and currency.
func (m Money) Equal(other Money) bool {
	return m.Amount.Equal(other.Amount) && m.Currency == other.Currency
}

// String renders the amount with two decimal places and the currency marker
// when present.
func (m Money) String() string {
	if m.Currency == "" {
		return m.Amount.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}

// Float64 returns the amount as a float64. Precision may be lost.
func (m Money) Float64() float64 {
	f, _ := m.Amount.Float64()
	return f
}
