package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travelbook/internal/domain"
)

// Keys under which the planner state is stored.
const (
	KeyTrips          = "trips"
	KeyExpenses       = "expenses"
	KeyRates          = "exchangeRates"
	KeyRatesTimestamp = "exchangeRatesTimestamp"

	inputCurrencyPrefix   = "inputCurrency_"
	displayCurrencyPrefix = "displayCurrency_"
)

// InputCurrencyKey is the key of a trip's input currency.
func InputCurrencyKey(tripID uuid.UUID) string { return inputCurrencyPrefix + tripID.String() }

// DisplayCurrencyKey is the key of a trip's display currency.
func DisplayCurrencyKey(tripID uuid.UUID) string { return displayCurrencyPrefix + tripID.String() }

// StateStore loads and saves the trips and the expense ledger together.
type StateStore struct {
	kv KV
}

// NewStateStore constructs a StateStore over kv.
func NewStateStore(kv KV) *StateStore {
	return &StateStore{kv: kv}
}

// Load returns the persisted snapshot. Missing keys yield an empty snapshot,
// never nil collections.
func (s *StateStore) Load(ctx context.Context) (domain.Snapshot, error) {
	snap := domain.Snapshot{Trips: []domain.Trip{}, Expenses: domain.ExpenseLedger{}}

	if err := getJSON(ctx, s.kv, KeyTrips, &snap.Trips); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Snapshot{}, fmt.Errorf("repo.StateStore.Load: %w", err)
	}
	if err := getJSON(ctx, s.kv, KeyExpenses, &snap.Expenses); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Snapshot{}, fmt.Errorf("repo.StateStore.Load: %w", err)
	}
	if snap.Trips == nil {
		snap.Trips = []domain.Trip{}
	}
	if snap.Expenses == nil {
		snap.Expenses = domain.ExpenseLedger{}
	}
	return snap, nil
}

// Save writes the whole snapshot in one batch. The currency preferences of
// the dropped trips are removed in the same batch.
func (s *StateStore) Save(ctx context.Context, snap domain.Snapshot, dropped ...uuid.UUID) error {
	var b Batch
	trips, err := json.Marshal(snap.Trips)
	if err != nil {
		return fmt.Errorf("repo.StateStore.Save: encode trips: %w", err)
	}
	expenses, err := json.Marshal(snap.Expenses)
	if err != nil {
		return fmt.Errorf("repo.StateStore.Save: encode expenses: %w", err)
	}
	b.Put(KeyTrips, trips)
	b.Put(KeyExpenses, expenses)
	for _, id := range dropped {
		b.Delete(InputCurrencyKey(id))
		b.Delete(DisplayCurrencyKey(id))
	}

	if err := s.kv.Write(ctx, b); err != nil {
		return fmt.Errorf("repo.StateStore.Save: %w", err)
	}
	return nil
}

// RateStore persists the exchange-rate table and its fetch time, the latter
// as unix milliseconds.
type RateStore struct {
	kv KV
}

// NewRateStore constructs a RateStore over kv.
func NewRateStore(kv KV) *RateStore {
	return &RateStore{kv: kv}
}

// LoadRates returns domain.ErrNotFound when no table was stored.
func (s *RateStore) LoadRates(ctx context.Context) (domain.RateTable, error) {
	var rates map[string]decimal.Decimal
	if err := getJSON(ctx, s.kv, KeyRates, &rates); err != nil {
		return domain.RateTable{}, fmt.Errorf("repo.RateStore.LoadRates: %w", err)
	}
	var millis int64
	if err := getJSON(ctx, s.kv, KeyRatesTimestamp, &millis); err != nil {
		return domain.RateTable{}, fmt.Errorf("repo.RateStore.LoadRates: %w", err)
	}
	return domain.RateTable{Rates: rates, FetchedAt: time.UnixMilli(millis).UTC()}, nil
}

// SaveRates stores the table and timestamp atomically.
func (s *RateStore) SaveRates(ctx context.Context, t domain.RateTable) error {
	rates, err := json.Marshal(t.Rates)
	if err != nil {
		return fmt.Errorf("repo.RateStore.SaveRates: %w", err)
	}
	var b Batch
	b.Put(KeyRates, rates)
	b.Put(KeyRatesTimestamp, []byte(strconv.FormatInt(t.FetchedAt.UnixMilli(), 10)))
	if err := s.kv.Write(ctx, b); err != nil {
		return fmt.Errorf("repo.RateStore.SaveRates: %w", err)
	}
	return nil
}

// PreferenceStore keeps each trip's input and display currency.
type PreferenceStore struct {
	kv       KV
	fallback string
}

// NewPreferenceStore constructs a PreferenceStore. fallback is returned for
// unset preferences.
func NewPreferenceStore(kv KV, fallback string) *PreferenceStore {
	return &PreferenceStore{kv: kv, fallback: fallback}
}

// Get returns the trip's preferences, defaulting each unset side.
func (s *PreferenceStore) Get(ctx context.Context, tripID uuid.UUID) (domain.CurrencyPreferences, error) {
	p := domain.CurrencyPreferences{Input: s.fallback, Display: s.fallback}
	for key, dst := range map[string]*string{
		InputCurrencyKey(tripID):   &p.Input,
		DisplayCurrencyKey(tripID): &p.Display,
	} {
		var code string
		err := getJSON(ctx, s.kv, key, &code)
		switch {
		case err == nil && code != "":
			*dst = code
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return domain.CurrencyPreferences{}, fmt.Errorf("repo.PreferenceStore.Get: %w", err)
		}
	}
	return p, nil
}

// Set stores both preferences.
func (s *PreferenceStore) Set(ctx context.Context, tripID uuid.UUID, p domain.CurrencyPreferences) error {
	input, _ := json.Marshal(p.Input)
	display, _ := json.Marshal(p.Display)
	var b Batch
	b.Put(InputCurrencyKey(tripID), input)
	b.Put(DisplayCurrencyKey(tripID), display)
	if err := s.kv.Write(ctx, b); err != nil {
		return fmt.Errorf("repo.PreferenceStore.Set: %w", err)
	}
	return nil
}

func getJSON(ctx context.Context, kv KV, key string, dst any) error {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}
