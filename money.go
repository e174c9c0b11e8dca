package belka

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents an exact monetary value in a single currency.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M builds a Money from a decimal value and an ISO 4217 currency code.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// MFloat builds a Money from a float value. Use only for literals in tests
// and display code; pipeline arithmetic stays in decimals.
func MFloat(value float64, currency string) Money {
	return Money{value: decimal.NewFromFloat(value), cur: currency}
}

// currency returns the full go-money currency, never nil.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

func (m Money) Currency() string      { return m.cur }
func (m Money) Amount() decimal.Decimal { return m.value }
func (m Money) IsZero() bool          { return m.value.IsZero() }
func (m Money) IsNegative() bool      { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool    { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) Neg() Money            { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money            { return Money{value: m.value.Abs(), cur: m.cur} }

func (m Money) Mul(n decimal.Decimal) Money { return Money{value: m.value.Mul(n), cur: m.cur} }
func (m Money) Div(n decimal.Decimal) Money { return Money{value: m.value.Div(n), cur: m.cur} }

// Add panics on currency mismatch: summing a USD withholding into a PLN
// dividend is always a programming error, never a recoverable one.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// cur resolves the currency of a binary operation; "" is the weak currency.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}

// Round returns the value rounded to the currency's minor unit.
func (m Money) Round() Money {
	return Money{value: m.value.Round(int32(m.currency().Fraction)), cur: m.cur}
}

// String renders the amount followed by its currency code, the format used in
// the spreadsheet export: "6.84 USD", "28.22 PLN". A zero or currency-less
// value renders as the "-" sentinel.
func (m Money) String() string {
	if m.value.IsZero() || m.cur == "" {
		return Dash
	}
	return m.value.StringFixed(int32(m.currency().Fraction)) + " " + m.cur
}
