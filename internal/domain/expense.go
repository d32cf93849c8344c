package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is one of the four fixed budget buckets.
type Category string

const (
	CategoryLodging    Category = "lodging"
	CategoryFood       Category = "food"
	CategoryTransport  Category = "transport"
	CategoryActivities Category = "activities"
)

// Categories lists every budget category in display order.
var Categories = []Category{CategoryLodging, CategoryFood, CategoryTransport, CategoryActivities}

// ParseCategory validates s against the fixed category set.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrValidation, s)
}

// Expense is an actual spending entry recorded in the ledger. An empty
// Currency means the day's input currency.
type Expense struct {
	Description string `json:"description"`
	Price       Price  `json:"price"`
	Currency    string `json:"currency,omitempty"`
}

// ExpensePatch overwrites the non-nil fields of a ledger entry.
type ExpensePatch struct {
	Description *string `json:"description,omitempty"`
	Price       *Price  `json:"price,omitempty"`
	Currency    *string `json:"currency,omitempty"`
}

// DayExpenses groups the ledger entries of one day by category.
type DayExpenses map[Category][]Expense

// TripExpenses maps a day position to its ledger entries. The planner re-keys
// it whenever days are moved or deleted.
type TripExpenses map[int]DayExpenses

// ExpenseLedger holds the actual expenses of every trip.
type ExpenseLedger map[uuid.UUID]TripExpenses

// Entries returns the ledger entries for a trip, day and category. Missing
// levels yield nil.
func (l ExpenseLedger) Entries(tripID uuid.UUID, dayIndex int, c Category) []Expense {
	return l[tripID][dayIndex][c]
}

// Clone returns a deep copy so callers can mutate the result freely.
func (l ExpenseLedger) Clone() ExpenseLedger {
	out := make(ExpenseLedger, len(l))
	for tripID, days := range l {
		td := make(TripExpenses, len(days))
		for idx, cats := range days {
			dc := make(DayExpenses, len(cats))
			for c, entries := range cats {
				dc[c] = append([]Expense(nil), entries...)
			}
			td[idx] = dc
		}
		out[tripID] = td
	}
	return out
}

// Snapshot is the whole persisted planner state.
type Snapshot struct {
	Trips    []Trip        `json:"trips"`
	Expenses ExpenseLedger `json:"expenses"`
}

// TripByID returns the trip with the given id and its position.
func (s Snapshot) TripByID(id uuid.UUID) (Trip, int, error) {
	for i, t := range s.Trips {
		if t.ID == id {
			return t, i, nil
		}
	}
	return Trip{}, -1, fmt.Errorf("trip %s: %w", id, ErrNotFound)
}

// RateTable maps currency codes to units per one unit of the pivot currency.
type RateTable struct {
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetched_at"`
}

// Empty reports whether no rates are known.
func (r RateTable) Empty() bool {
	return len(r.Rates) == 0
}

// CurrencyPreferences are the per-trip input and display currencies.
type CurrencyPreferences struct {
	Input   string `json:"input"`
	Display string `json:"display"`
}
