package domain

import "github.com/shopspring/decimal"

// ExportRow is a single row in the flat budget export.
// It is a denormalized view: one row per day and category, with trip and day
// fields repeated on every row. Amounts are in Currency. Trips without days
// yield no rows.
type ExportRow struct {
	TripID   string
	TripName string

	DayIndex int
	DayName  string
	DayDate  string // "2006-01-02", empty when the day has no date
	Location string

	Category Category
	Planned  decimal.Decimal
	Actual   decimal.Decimal
	Currency string
}

// CoverSummary is the data printed on the first page of an exported trip.
type CoverSummary struct {
	TripName  string
	DateRange string
	DayCount  int
	// MapImage is the captured map as PNG bytes; nil when unavailable.
	MapImage []byte
}
