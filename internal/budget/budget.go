// Package budget computes planned and actual spending per day and category,
// normalising every entry to a target currency before summing.
package budget

import (
	"github.com/shopspring/decimal"

	"github.com/pkordes/travelbook/internal/currency"
	"github.com/pkordes/travelbook/internal/domain"
)

// Line is the planned and actual amount of one category.
type Line struct {
	Category   domain.Category `json:"category"`
	Planned    decimal.Decimal `json:"planned"`
	Actual     decimal.Decimal `json:"actual"`
	Difference decimal.Decimal `json:"difference"`
}

// Breakdown is the per-category view of a day or a whole trip, all amounts
// in Currency. Difference is planned minus actual.
type Breakdown struct {
	Currency   string          `json:"currency"`
	Lines      []Line          `json:"lines"`
	Planned    decimal.Decimal `json:"planned"`
	Actual     decimal.Decimal `json:"actual"`
	Difference decimal.Decimal `json:"difference"`
}

// Line returns the line for c, or a zero line.
func (b Breakdown) Line(c domain.Category) Line {
	for _, l := range b.Lines {
		if l.Category == c {
			return l
		}
	}
	return Line{Category: c}
}

// Pricing says how amounts are read and reported. Input is the trip's input
// currency: the currency of an entry that has none, on a day that has none.
// Amounts are converted to Target with Rates; an empty Input or Target means
// the pivot currency.
type Pricing struct {
	Input  string
	Target string
	Rates  map[string]decimal.Decimal
}

// PlannedAmount is what the day's embedded records say will be spent on c.
// Each entry is converted on its own from its currency, else the day's,
// else the trip input currency. Absent prices count as zero, as does an out
// of range dayIndex.
func PlannedAmount(trip domain.Trip, dayIndex int, c domain.Category, p Pricing) decimal.Decimal {
	if dayIndex < 0 || dayIndex >= len(trip.Days) {
		return decimal.Zero
	}
	day := trip.Days[dayIndex]
	conv := p.forDay(day)

	switch c {
	case domain.CategoryLodging:
		return conv.amount(day.Accommodation.Price, day.Accommodation.Currency, 1)
	case domain.CategoryFood:
		sum := decimal.Zero
		for _, m := range day.Food.Meals() {
			sum = sum.Add(conv.amount(m.Price, m.Currency, m.Quantity()))
		}
		return sum
	case domain.CategoryTransport:
		sum := decimal.Zero
		for _, t := range day.Transports {
			sum = sum.Add(conv.amount(t.Price, t.Currency, t.Count))
		}
		return sum
	case domain.CategoryActivities:
		sum := decimal.Zero
		for _, a := range day.Activities {
			sum = sum.Add(conv.amount(a.Price, a.Currency, a.Count))
		}
		return sum
	}
	return decimal.Zero
}

// ActualAmount sums the ledger entries for a day and category. Entries
// without a currency are in the day's currency, else the trip input currency.
func ActualAmount(trip domain.Trip, ledger domain.ExpenseLedger, dayIndex int, c domain.Category, p Pricing) decimal.Decimal {
	if dayIndex < 0 || dayIndex >= len(trip.Days) {
		return decimal.Zero
	}
	conv := p.forDay(trip.Days[dayIndex])
	sum := decimal.Zero
	for _, e := range ledger.Entries(trip.ID, dayIndex, c) {
		sum = sum.Add(conv.amount(e.Price, e.Currency, 1))
	}
	return sum
}

// DayTotals is the breakdown of a single day.
func DayTotals(trip domain.Trip, ledger domain.ExpenseLedger, dayIndex int, p Pricing) Breakdown {
	return breakdown(trip, ledger, []int{dayIndex}, p)
}

// TripTotals is the breakdown summed over every day of the trip.
func TripTotals(trip domain.Trip, ledger domain.ExpenseLedger, p Pricing) Breakdown {
	idx := make([]int, len(trip.Days))
	for i := range idx {
		idx[i] = i
	}
	return breakdown(trip, ledger, idx, p)
}

func breakdown(trip domain.Trip, ledger domain.ExpenseLedger, days []int, p Pricing) Breakdown {
	p.Target = currency.OrPivot(p.Target)
	b := Breakdown{
		Currency: p.Target,
		Lines:    make([]Line, 0, len(domain.Categories)),
	}
	for _, c := range domain.Categories {
		l := Line{Category: c}
		for _, i := range days {
			l.Planned = l.Planned.Add(PlannedAmount(trip, i, c, p))
			l.Actual = l.Actual.Add(ActualAmount(trip, ledger, i, c, p))
		}
		l.Difference = l.Planned.Sub(l.Actual)
		b.Lines = append(b.Lines, l)
		b.Planned = b.Planned.Add(l.Planned)
		b.Actual = b.Actual.Add(l.Actual)
	}
	b.Difference = b.Planned.Sub(b.Actual)
	return b
}

type converter struct {
	source string
	target string
	rates  map[string]decimal.Decimal
}

func (p Pricing) forDay(day domain.Day) converter {
	source := day.Currency
	if source == "" {
		source = p.Input
	}
	return converter{source: source, target: p.Target, rates: p.Rates}
}

// amount converts price × count from the entry's currency, or the default
// source, to the target.
func (c converter) amount(price domain.Price, cur string, count int) decimal.Decimal {
	if count < 1 {
		count = 1
	}
	from := cur
	if from == "" {
		from = c.source
	}
	total := price.OrZero().Mul(decimal.NewFromInt(int64(count)))
	return currency.Convert(total, from, c.target, c.rates)
}
