package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/export"
	"github.com/pkordes/travelbook/internal/repo"
	"github.com/pkordes/travelbook/internal/service"
)

// fixedNow is 2024-01-01 so new days are dated from there.
var fixedNow = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

// newState returns a State over an in-memory store with a fixed clock.
func newState(t *testing.T) (*service.State, repo.KV) {
	t.Helper()
	kv := repo.NewMemoryKV()
	st := service.NewState(repo.NewStateStore(kv), service.WithClock(func() time.Time { return fixedNow }))
	return st, kv
}

// seedTrip creates a trip with n days through the services.
func seedTrip(t *testing.T, st *service.State, name string, n int) domain.Trip {
	t.Helper()
	ctx := context.Background()
	trip, err := service.NewTripService(st).Create(ctx, name, domain.Appearance{})
	require.NoError(t, err)
	days := service.NewDayService(st)
	for i := 0; i < n; i++ {
		_, err := days.Add(ctx, trip.ID)
		require.NoError(t, err)
	}
	trip, err = service.NewTripService(st).GetByID(ctx, trip.ID)
	require.NoError(t, err)
	return trip
}

// mockStateStore is a hand-written test double for service.StateStore.
type mockStateStore struct {
	load func(ctx context.Context) (domain.Snapshot, error)
	save func(ctx context.Context, snap domain.Snapshot, dropped ...uuid.UUID) error
}

func (m *mockStateStore) Load(ctx context.Context) (domain.Snapshot, error) {
	return m.load(ctx)
}
func (m *mockStateStore) Save(ctx context.Context, snap domain.Snapshot, dropped ...uuid.UUID) error {
	return m.save(ctx, snap, dropped...)
}

var _ service.StateStore = (*mockStateStore)(nil)

// mockRates is a hand-written test double for service.RateProvider.
type mockRates struct {
	rates   func(ctx context.Context) domain.RateTable
	refresh func(ctx context.Context) (domain.RateTable, error)
}

func (m *mockRates) Rates(ctx context.Context) domain.RateTable {
	return m.rates(ctx)
}
func (m *mockRates) Refresh(ctx context.Context) (domain.RateTable, error) {
	return m.refresh(ctx)
}

var _ service.RateProvider = (*mockRates)(nil)

func staticRates(rates map[string]string) *mockRates {
	table := domain.RateTable{Rates: map[string]decimal.Decimal{}, FetchedAt: fixedNow}
	for code, r := range rates {
		table.Rates[code] = decimal.RequireFromString(r)
	}
	return &mockRates{
		rates:   func(context.Context) domain.RateTable { return table },
		refresh: func(context.Context) (domain.RateTable, error) { return table, nil },
	}
}

func noRates() *mockRates {
	return &mockRates{
		rates: func(context.Context) domain.RateTable { return domain.RateTable{} },
		refresh: func(context.Context) (domain.RateTable, error) {
			return domain.RateTable{}, errors.New("provider down")
		},
	}
}

// mockCapturer is a hand-written test double for export.MapCapturer.
type mockCapturer struct {
	capture func(ctx context.Context, trip domain.Trip) ([]byte, error)
}

func (m *mockCapturer) Capture(ctx context.Context, trip domain.Trip) ([]byte, error) {
	return m.capture(ctx, trip)
}

var _ export.MapCapturer = (*mockCapturer)(nil)

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
