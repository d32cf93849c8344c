package planner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travelbook/internal/domain"
)

// AddExpense appends an actual expense to a trip's day and category.
func AddExpense(l domain.ExpenseLedger, trip domain.Trip, dayIndex int, c domain.Category, e domain.Expense) (domain.ExpenseLedger, error) {
	if err := checkDayIndex(trip, dayIndex); err != nil {
		return nil, err
	}
	e, err := normalizeExpense(e)
	if err != nil {
		return nil, err
	}
	out := l.Clone()
	days := out[trip.ID]
	if days == nil {
		days = domain.TripExpenses{}
		out[trip.ID] = days
	}
	cats := days[dayIndex]
	if cats == nil {
		cats = domain.DayExpenses{}
		days[dayIndex] = cats
	}
	cats[c] = append(cats[c], e)
	return out, nil
}

// UpdateExpense merges p into the entry at position entry.
func UpdateExpense(l domain.ExpenseLedger, trip domain.Trip, dayIndex int, c domain.Category, entry int, p domain.ExpensePatch) (domain.ExpenseLedger, error) {
	if err := checkEntry(l, trip, dayIndex, c, entry); err != nil {
		return nil, err
	}
	out := l.Clone()
	e := out[trip.ID][dayIndex][c][entry]
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Price != nil {
		e.Price = *p.Price
	}
	if p.Currency != nil {
		e.Currency = *p.Currency
	}
	e, err := normalizeExpense(e)
	if err != nil {
		return nil, err
	}
	out[trip.ID][dayIndex][c][entry] = e
	return out, nil
}

// RemoveExpense deletes the entry at position entry.
func RemoveExpense(l domain.ExpenseLedger, trip domain.Trip, dayIndex int, c domain.Category, entry int) (domain.ExpenseLedger, error) {
	if err := checkEntry(l, trip, dayIndex, c, entry); err != nil {
		return nil, err
	}
	out := l.Clone()
	entries := out[trip.ID][dayIndex][c]
	out[trip.ID][dayIndex][c] = append(entries[:entry:entry], entries[entry+1:]...)
	return out, nil
}

// DropTrip removes every ledger entry of a trip.
func DropTrip(l domain.ExpenseLedger, tripID uuid.UUID) domain.ExpenseLedger {
	out := l.Clone()
	delete(out, tripID)
	return out
}

// MoveLedgerDay re-keys a trip's entries after MoveDay(from, to) on a trip
// of n days, so expenses stay with the day they were recorded for.
func MoveLedgerDay(l domain.ExpenseLedger, tripID uuid.UUID, from, to, n int) domain.ExpenseLedger {
	out := l.Clone()
	days, ok := out[tripID]
	if !ok || from == to {
		return out
	}
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i != from {
			order = append(order, i)
		}
	}
	order = append(order[:to], append([]int{from}, order[to:]...)...)

	moved := make(domain.TripExpenses, len(days))
	for idx, e := range days {
		if idx >= n {
			moved[idx] = e
		}
	}
	for pos, old := range order {
		if e, ok := days[old]; ok {
			moved[pos] = e
		}
	}
	out[tripID] = moved
	return out
}

// DeleteLedgerDay drops the entries of the deleted day and shifts the ones
// recorded for later days down by one position.
func DeleteLedgerDay(l domain.ExpenseLedger, tripID uuid.UUID, idx int) domain.ExpenseLedger {
	out := l.Clone()
	days, ok := out[tripID]
	if !ok {
		return out
	}
	shifted := make(domain.TripExpenses, len(days))
	for i, e := range days {
		switch {
		case i < idx:
			shifted[i] = e
		case i > idx:
			shifted[i-1] = e
		}
	}
	out[tripID] = shifted
	return out
}

func checkDayIndex(trip domain.Trip, dayIndex int) error {
	if dayIndex < 0 || dayIndex >= len(trip.Days) {
		return fmt.Errorf("day %d of trip %s: %w", dayIndex, trip.ID, domain.ErrNotFound)
	}
	return nil
}

func checkEntry(l domain.ExpenseLedger, trip domain.Trip, dayIndex int, c domain.Category, entry int) error {
	if err := checkDayIndex(trip, dayIndex); err != nil {
		return err
	}
	if entry < 0 || entry >= len(l.Entries(trip.ID, dayIndex, c)) {
		return fmt.Errorf("expense %d: %w", entry, domain.ErrNotFound)
	}
	return nil
}

func normalizeExpense(e domain.Expense) (domain.Expense, error) {
	e.Description = strings.TrimSpace(e.Description)
	if err := e.Price.Validate(); err != nil {
		return e, err
	}
	code, err := validCurrency(e.Currency)
	if err != nil {
		return e, err
	}
	e.Currency = code
	return e, nil
}
