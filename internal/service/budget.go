package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travelbook/internal/budget"
	"github.com/pkordes/travelbook/internal/currency"
	"github.com/pkordes/travelbook/internal/domain"
)

// RateProvider serves the exchange-rate table. Rates never fails: it
// degrades to a stale or empty table.
type RateProvider interface {
	Rates(ctx context.Context) domain.RateTable
	Refresh(ctx context.Context) (domain.RateTable, error)
}

// PreferenceStore persists the per-trip currency preferences.
type PreferenceStore interface {
	Get(ctx context.Context, tripID uuid.UUID) (domain.CurrencyPreferences, error)
	Set(ctx context.Context, tripID uuid.UUID, p domain.CurrencyPreferences) error
}

// BudgetReport is a breakdown plus display strings. When RatesAvailable is
// false the amounts were summed without conversion.
type BudgetReport struct {
	budget.Breakdown
	RatesAvailable    bool   `json:"rates_available"`
	PlannedDisplay    string `json:"planned_display"`
	ActualDisplay     string `json:"actual_display"`
	DifferenceDisplay string `json:"difference_display"`
}

// Conversion is the result of converting a single amount.
type Conversion struct {
	Amount         decimal.Decimal `json:"amount"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	Result         decimal.Decimal `json:"result"`
	Display        string          `json:"display"`
	RatesAvailable bool            `json:"rates_available"`
}

// BudgetService combines the planner state, the currency preferences and
// the exchange rates into budget reports.
type BudgetService struct {
	state *State
	prefs PreferenceStore
	rates RateProvider
}

// NewBudgetService constructs a BudgetService.
func NewBudgetService(state *State, prefs PreferenceStore, rates RateProvider) *BudgetService {
	return &BudgetService{state: state, prefs: prefs, rates: rates}
}

// Preferences returns a trip's input and display currencies.
func (s *BudgetService) Preferences(ctx context.Context, tripID uuid.UUID) (domain.CurrencyPreferences, error) {
	if _, _, err := s.state.Trip(ctx, tripID); err != nil {
		return domain.CurrencyPreferences{}, fmt.Errorf("service.BudgetService.Preferences: %w", err)
	}
	p, err := s.prefs.Get(ctx, tripID)
	if err != nil {
		return domain.CurrencyPreferences{}, fmt.Errorf("service.BudgetService.Preferences: %w", err)
	}
	return p, nil
}

// SetPreferences updates a trip's currencies. An empty side is left as is.
func (s *BudgetService) SetPreferences(ctx context.Context, tripID uuid.UUID, p domain.CurrencyPreferences) (domain.CurrencyPreferences, error) {
	current, err := s.Preferences(ctx, tripID)
	if err != nil {
		return domain.CurrencyPreferences{}, err
	}
	for _, side := range []struct {
		code string
		dst  *string
	}{{p.Input, &current.Input}, {p.Display, &current.Display}} {
		code := currency.Normalize(side.code)
		if code == "" {
			continue
		}
		if err := currency.Validate(code); err != nil {
			return domain.CurrencyPreferences{}, fmt.Errorf("service.BudgetService.SetPreferences: %w", err)
		}
		*side.dst = code
	}
	if err := s.prefs.Set(ctx, tripID, current); err != nil {
		return domain.CurrencyPreferences{}, fmt.Errorf("service.BudgetService.SetPreferences: %w", err)
	}
	return current, nil
}

// Trip reports the whole trip in target, or in the trip's display currency
// when target is empty.
func (s *BudgetService) Trip(ctx context.Context, tripID uuid.UUID, target string) (BudgetReport, error) {
	trip, ledger, err := s.state.Trip(ctx, tripID)
	if err != nil {
		return BudgetReport{}, fmt.Errorf("service.BudgetService.Trip: %w", err)
	}
	prefs, err := s.prefs.Get(ctx, tripID)
	if err != nil {
		return BudgetReport{}, fmt.Errorf("service.BudgetService.Trip: %w", err)
	}
	target, err = resolveTarget(target, "", prefs.Display)
	if err != nil {
		return BudgetReport{}, fmt.Errorf("service.BudgetService.Trip: %w", err)
	}
	table := s.rates.Rates(ctx)
	p := budget.Pricing{Input: prefs.Input, Target: target, Rates: table.Rates}
	return report(budget.TripTotals(trip, ledger, p), table), nil
}

// Day reports one day in target. An empty target means the day's currency,
// then the trip's input currency.
func (s *BudgetService) Day(ctx context.Context, tripID uuid.UUID, dayIndex int, target string) (BudgetReport, error) {
	trip, ledger, err := s.state.Trip(ctx, tripID)
	if err != nil {
		return BudgetReport{}, fmt.Errorf("service.BudgetService.Day: %w", err)
	}
	if dayIndex < 0 || dayIndex >= len(trip.Days) {
		return BudgetReport{}, fmt.Errorf("service.BudgetService.Day: day %d: %w", dayIndex, domain.ErrNotFound)
	}
	prefs, err := s.prefs.Get(ctx, tripID)
	if err != nil {
		return BudgetReport{}, fmt.Errorf("service.BudgetService.Day: %w", err)
	}
	target, err = resolveTarget(target, trip.Days[dayIndex].Currency, prefs.Input)
	if err != nil {
		return BudgetReport{}, fmt.Errorf("service.BudgetService.Day: %w", err)
	}
	table := s.rates.Rates(ctx)
	p := budget.Pricing{Input: prefs.Input, Target: target, Rates: table.Rates}
	return report(budget.DayTotals(trip, ledger, dayIndex, p), table), nil
}

// Rates returns the current table, possibly stale or empty.
func (s *BudgetService) Rates(ctx context.Context) domain.RateTable {
	return s.rates.Rates(ctx)
}

// Refresh forces a fetch from the rate provider.
func (s *BudgetService) Refresh(ctx context.Context) (domain.RateTable, error) {
	t, err := s.rates.Refresh(ctx)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("service.BudgetService.Refresh: %w", err)
	}
	return t, nil
}

// Convert converts a single amount between two supported currencies.
func (s *BudgetService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (Conversion, error) {
	from, to = currency.Normalize(from), currency.Normalize(to)
	for _, code := range []string{from, to} {
		if code == "" {
			return Conversion{}, fmt.Errorf("service.BudgetService.Convert: %w: currency is required", domain.ErrValidation)
		}
		if err := currency.Validate(code); err != nil {
			return Conversion{}, fmt.Errorf("service.BudgetService.Convert: %w", err)
		}
	}
	table := s.rates.Rates(ctx)
	result := currency.Convert(amount, from, to, table.Rates)
	return Conversion{
		Amount:         amount,
		From:           from,
		To:             to,
		Result:         result,
		Display:        currency.Format(result, to),
		RatesAvailable: !table.Empty(),
	}, nil
}

// resolveTarget picks the report currency: explicit, then the day's
// currency, then the preference.
func resolveTarget(explicit, day, pref string) (string, error) {
	if code := currency.Normalize(explicit); code != "" {
		if err := currency.Validate(code); err != nil {
			return "", err
		}
		return code, nil
	}
	if day != "" {
		return day, nil
	}
	return currency.OrPivot(pref), nil
}

func report(b budget.Breakdown, table domain.RateTable) BudgetReport {
	return BudgetReport{
		Breakdown:         b,
		RatesAvailable:    !table.Empty(),
		PlannedDisplay:    currency.Format(b.Planned, b.Currency),
		ActualDisplay:     currency.Format(b.Actual, b.Currency),
		DifferenceDisplay: currency.Format(b.Difference, b.Currency),
	}
}
