package domain

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is a unit price that may be absent. An absent price is distinct from
// a zero price on the wire and in storage, but both contribute nothing to a
// total.
type Price struct {
	Amount decimal.Decimal
	Valid  bool
}

// NoPrice is the absent price.
var NoPrice = Price{}

// NewPrice returns a present price.
func NewPrice(d decimal.Decimal) Price {
	return Price{Amount: d, Valid: true}
}

// PriceOf is a convenience for literals in tests and fixtures.
func PriceOf(v float64) Price {
	return NewPrice(decimal.NewFromFloat(v))
}

// OrZero returns the amount, or zero when the price is absent.
func (p Price) OrZero() decimal.Decimal {
	if !p.Valid {
		return decimal.Zero
	}
	return p.Amount
}

// Validate rejects negative prices.
func (p Price) Validate() error {
	if p.Valid && p.Amount.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}

// MarshalJSON writes a JSON number, or null when absent.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(p.Amount.String()), nil
}

// UnmarshalJSON accepts a number, a numeric string, null or "" (absent).
func (p *Price) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		*p = NoPrice
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("%w: invalid price %s", ErrValidation, b)
	}
	*p = NewPrice(d)
	return nil
}
