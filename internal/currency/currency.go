// Package currency converts and formats amounts across the supported
// currencies and keeps the EUR-pivot rate table fresh.
package currency

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travelbook/internal/domain"
)

// Pivot is the currency every rate is expressed against.
const Pivot = "EUR"

// Codes is the allow-list of selectable currencies, sorted.
var Codes = []string{
	"AED", "ARS", "AUD", "BGN", "BHD", "BRL", "CAD", "CHF", "CLP", "CNY",
	"COP", "CZK", "DKK", "EGP", "EUR", "GBP", "HKD", "HRK", "HUF", "IDR",
	"ILS", "INR", "ISK", "JOD", "JPY", "KES", "KRW", "KWD", "LBP", "MXN",
	"MYR", "NOK", "NZD", "OMR", "PHP", "PKR", "PLN", "QAR", "RON", "RUB",
	"SAR", "SEK", "SGD", "THB", "TRY", "TWD", "UAH", "USD", "VND", "ZAR",
}

// IsSupported reports whether code is in the allow-list.
func IsSupported(code string) bool {
	_, found := slices.BinarySearch(Codes, code)
	return found
}

// Normalize upper-cases and trims a code. An empty code stays empty.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate accepts an empty code or an allow-listed one.
func Validate(code string) error {
	if code == "" || IsSupported(code) {
		return nil
	}
	return fmt.Errorf("%w: unsupported currency %q", domain.ErrValidation, code)
}

// OrPivot returns code, or Pivot when code is empty.
func OrPivot(code string) string {
	if code == "" {
		return Pivot
	}
	return code
}

// Convert turns amount in from into to using a table of units per pivot.
// Same currency is the identity. A missing or zero rate on either side
// returns amount unchanged; conversion never fails.
func Convert(amount decimal.Decimal, from, to string, rates map[string]decimal.Decimal) decimal.Decimal {
	from, to = OrPivot(from), OrPivot(to)
	if from == to {
		return amount
	}
	fromRate, ok := rate(rates, from)
	if !ok {
		return amount
	}
	toRate, ok := rate(rates, to)
	if !ok {
		return amount
	}
	return amount.Div(fromRate).Mul(toRate)
}

func rate(rates map[string]decimal.Decimal, code string) (decimal.Decimal, bool) {
	r, ok := rates[code]
	if !ok && code == Pivot && len(rates) > 0 {
		return decimal.NewFromInt(1), true
	}
	if !ok || r.IsZero() {
		return decimal.Zero, false
	}
	return r, true
}

// Format renders amount with the currency's symbol and fraction digits,
// e.g. "€12.50" or "¥1,200". Unknown codes fall back to "12.50 XYZ".
func Format(amount decimal.Decimal, code string) string {
	code = OrPivot(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	factor := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0)
	return money.New(minor.IntPart(), code).Display()
}
