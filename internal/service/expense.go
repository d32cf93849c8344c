package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/planner"
)

// ExpenseService implements the actual-expense ledger of a trip's days.
// Entries are addressed by day position, category and entry position.
type ExpenseService struct {
	state *State
}

// NewExpenseService constructs an ExpenseService over the shared state.
func NewExpenseService(state *State) *ExpenseService {
	return &ExpenseService{state: state}
}

// List returns a day's entries for every category. Categories without
// entries map to an empty, non-nil slice.
func (s *ExpenseService) List(ctx context.Context, tripID uuid.UUID, dayIndex int) (domain.DayExpenses, error) {
	trip, ledger, err := s.state.Trip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.List: %w", err)
	}
	if dayIndex < 0 || dayIndex >= len(trip.Days) {
		return nil, fmt.Errorf("service.ExpenseService.List: day %d: %w", dayIndex, domain.ErrNotFound)
	}
	return dayExpenses(ledger, tripID, dayIndex), nil
}

// Add appends an entry and returns the day's updated entries.
func (s *ExpenseService) Add(ctx context.Context, tripID uuid.UUID, dayIndex int, c domain.Category, e domain.Expense) (domain.DayExpenses, error) {
	_, ledger, err := s.state.MutateTrip(ctx, tripID, func(t domain.Trip, l domain.ExpenseLedger) (domain.Trip, domain.ExpenseLedger, error) {
		next, err := planner.AddExpense(l, t, dayIndex, c, e)
		return t, next, err
	})
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.Add: %w", err)
	}
	return dayExpenses(ledger, tripID, dayIndex), nil
}

// Update merges a patch into one entry.
func (s *ExpenseService) Update(ctx context.Context, tripID uuid.UUID, dayIndex int, c domain.Category, entry int, p domain.ExpensePatch) (domain.Expense, error) {
	_, ledger, err := s.state.MutateTrip(ctx, tripID, func(t domain.Trip, l domain.ExpenseLedger) (domain.Trip, domain.ExpenseLedger, error) {
		next, err := planner.UpdateExpense(l, t, dayIndex, c, entry, p)
		return t, next, err
	})
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return ledger.Entries(tripID, dayIndex, c)[entry], nil
}

// Remove deletes one entry. Later entries of the category shift down.
func (s *ExpenseService) Remove(ctx context.Context, tripID uuid.UUID, dayIndex int, c domain.Category, entry int) error {
	_, _, err := s.state.MutateTrip(ctx, tripID, func(t domain.Trip, l domain.ExpenseLedger) (domain.Trip, domain.ExpenseLedger, error) {
		next, err := planner.RemoveExpense(l, t, dayIndex, c, entry)
		return t, next, err
	})
	if err != nil {
		return fmt.Errorf("service.ExpenseService.Remove: %w", err)
	}
	return nil
}

func dayExpenses(l domain.ExpenseLedger, tripID uuid.UUID, dayIndex int) domain.DayExpenses {
	out := make(domain.DayExpenses, len(domain.Categories))
	for _, c := range domain.Categories {
		out[c] = append([]domain.Expense{}, l.Entries(tripID, dayIndex, c)...)
	}
	return out
}
