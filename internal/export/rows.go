package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travelbook/internal/budget"
	"github.com/pkordes/travelbook/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "day_index", "day_name", "day_date", "location",
	"category", "planned", "actual", "currency",
}

// BudgetRows flattens a trip into one row per day and category, amounts in
// p.Target.
func BudgetRows(trip domain.Trip, ledger domain.ExpenseLedger, p budget.Pricing) []domain.ExportRow {
	rows := make([]domain.ExportRow, 0, len(trip.Days)*len(domain.Categories))
	for i, day := range trip.Days {
		b := budget.DayTotals(trip, ledger, i, p)
		for _, line := range b.Lines {
			rows = append(rows, domain.ExportRow{
				TripID:   trip.ID.String(),
				TripName: trip.Name,
				DayIndex: i,
				DayName:  day.Name,
				DayDate:  day.Date.String(),
				Location: day.Location.Name,
				Category: line.Category,
				Planned:  line.Planned,
				Actual:   line.Actual,
				Currency: b.Currency,
			})
		}
	}
	return rows
}

type jsonRow struct {
	TripID   string          `json:"trip_id"`
	TripName string          `json:"trip_name"`
	DayIndex int             `json:"day_index"`
	DayName  string          `json:"day_name"`
	DayDate  *string         `json:"day_date"`
	Location string          `json:"location,omitempty"`
	Category domain.Category `json:"category"`
	Planned  decimal.Decimal `json:"planned"`
	Actual   decimal.Decimal `json:"actual"`
	Currency string          `json:"currency"`
}

// WriteJSON encodes rows as a JSON array. An empty date becomes null.
func WriteJSON(w io.Writer, rows []domain.ExportRow) error {
	out := make([]jsonRow, 0, len(rows))
	for _, r := range rows {
		jr := jsonRow{
			TripID:   r.TripID,
			TripName: r.TripName,
			DayIndex: r.DayIndex,
			DayName:  r.DayName,
			Location: r.Location,
			Category: r.Category,
			Planned:  r.Planned,
			Actual:   r.Actual,
			Currency: r.Currency,
		}
		if r.DayDate != "" {
			jr.DayDate = &r.DayDate
		}
		out = append(out, jr)
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("export.WriteJSON: %w", err)
	}
	return nil
}

// WriteCSV writes a header row and one record per row. Amounts use two
// decimal places.
func WriteCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.TripID,
			r.TripName,
			strconv.Itoa(r.DayIndex),
			r.DayName,
			r.DayDate,
			r.Location,
			string(r.Category),
			r.Planned.StringFixed(2),
			r.Actual.StringFixed(2),
			r.Currency,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export.WriteCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	return nil
}
