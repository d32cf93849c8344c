package currency_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/currency"
	"github.com/pkordes/travelbook/internal/domain"
)

// mockFetcher is a hand-written test double for currency.Fetcher.
type mockFetcher struct {
	calls atomic.Int32
	fetch func(ctx context.Context) (map[string]decimal.Decimal, error)
}

func (m *mockFetcher) Fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	m.calls.Add(1)
	return m.fetch(ctx)
}

// memStore keeps the table in memory and counts saves.
type memStore struct {
	mu    sync.Mutex
	table *domain.RateTable
	saves int
	err   error
}

func (m *memStore) LoadRates(_ context.Context) (domain.RateTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.RateTable{}, m.err
	}
	if m.table == nil {
		return domain.RateTable{}, domain.ErrNotFound
	}
	return *m.table, nil
}

func (m *memStore) SaveRates(_ context.Context, t domain.RateTable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table = &t
	m.saves++
	return nil
}

var (
	_ currency.Fetcher = (*mockFetcher)(nil)
	_ currency.Store   = (*memStore)(nil)
)

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func okFetcher(usd string) *mockFetcher {
	return &mockFetcher{fetch: func(context.Context) (map[string]decimal.Decimal, error) {
		return map[string]decimal.Decimal{
			"EUR": decimal.NewFromInt(1),
			"USD": decimal.RequireFromString(usd),
			"BTC": decimal.RequireFromString("0.00001"),
		}, nil
	}}
}

func newService(f currency.Fetcher, st currency.Store, c *clock) *currency.RateService {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return currency.NewRateService(f, st, 24*time.Hour, currency.WithClock(c.now), currency.WithLogger(quiet))
}

func TestRateService_FetchesAndFiltersAllowList(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	st := &memStore{}
	svc := newService(okFetcher("1.1"), st, c)

	got := svc.Rates(context.Background())

	assert.Contains(t, got.Rates, "USD")
	assert.NotContains(t, got.Rates, "BTC")
	assert.Equal(t, c.t, got.FetchedAt)
	assert.Equal(t, 1, st.saves)
}

func TestRateService_ServesCacheWithinTTL(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	f := okFetcher("1.1")
	svc := newService(f, &memStore{}, c)

	svc.Rates(context.Background())
	c.advance(23 * time.Hour)
	svc.Rates(context.Background())

	assert.Equal(t, int32(1), f.calls.Load())
}

func TestRateService_RefetchesWhenStale(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	f := okFetcher("1.1")
	svc := newService(f, &memStore{}, c)

	svc.Rates(context.Background())
	c.advance(25 * time.Hour)
	got := svc.Rates(context.Background())

	assert.Equal(t, int32(2), f.calls.Load())
	assert.Equal(t, c.t, got.FetchedAt)
}

func TestRateService_UsesFreshStoredTable(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	stored := domain.RateTable{
		Rates:     map[string]decimal.Decimal{"USD": decimal.RequireFromString("1.2")},
		FetchedAt: c.t.Add(-time.Hour),
	}
	f := okFetcher("1.1")
	svc := newService(f, &memStore{table: &stored}, c)

	got := svc.Rates(context.Background())

	assert.Equal(t, int32(0), f.calls.Load())
	assert.True(t, got.Rates["USD"].Equal(decimal.RequireFromString("1.2")))
}

func TestRateService_FallsBackToStaleStoredTable(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)}
	stored := domain.RateTable{
		Rates:     map[string]decimal.Decimal{"USD": decimal.RequireFromString("1.2")},
		FetchedAt: c.t.AddDate(0, 0, -5),
	}
	f := &mockFetcher{fetch: func(context.Context) (map[string]decimal.Decimal, error) {
		return nil, errors.New("network down")
	}}
	svc := newService(f, &memStore{table: &stored}, c)

	got := svc.Rates(context.Background())

	assert.Equal(t, stored.FetchedAt, got.FetchedAt)
	assert.False(t, got.Empty())
}

func TestRateService_FallsBackToStaleMemoryTable(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	fail := false
	f := &mockFetcher{fetch: func(context.Context) (map[string]decimal.Decimal, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return map[string]decimal.Decimal{"USD": decimal.RequireFromString("1.1")}, nil
	}}
	svc := newService(f, &memStore{}, c)

	first := svc.Rates(context.Background())
	fail = true
	c.advance(48 * time.Hour)
	got := svc.Rates(context.Background())

	assert.Equal(t, first.FetchedAt, got.FetchedAt)
}

func TestRateService_EmptyWhenNothingAvailable(t *testing.T) {
	c := &clock{t: time.Now()}
	f := &mockFetcher{fetch: func(context.Context) (map[string]decimal.Decimal, error) {
		return nil, errors.New("boom")
	}}
	svc := newService(f, &memStore{}, c)

	got := svc.Rates(context.Background())

	assert.True(t, got.Empty())
}

func TestRateService_NoSupportedCodesIsFailure(t *testing.T) {
	c := &clock{t: time.Now()}
	f := &mockFetcher{fetch: func(context.Context) (map[string]decimal.Decimal, error) {
		return map[string]decimal.Decimal{"BTC": decimal.NewFromInt(1)}, nil
	}}
	svc := newService(f, &memStore{}, c)

	_, err := svc.Refresh(context.Background())

	assert.ErrorIs(t, err, currency.ErrNoRates)
}

func TestRateService_ConcurrentCallsShareOneFetch(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	release := make(chan struct{})
	f := &mockFetcher{fetch: func(context.Context) (map[string]decimal.Decimal, error) {
		<-release
		return map[string]decimal.Decimal{"USD": decimal.RequireFromString("1.1")}, nil
	}}
	svc := newService(f, &memStore{}, c)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Rates(context.Background())
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), f.calls.Load())
}

func TestRateService_RefreshAndStaleReadShareOneFetch(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	release := make(chan struct{})
	f := &mockFetcher{fetch: func(context.Context) (map[string]decimal.Decimal, error) {
		<-release
		return map[string]decimal.Decimal{"USD": decimal.RequireFromString("1.1")}, nil
	}}
	svc := newService(f, &memStore{}, c)

	var wg sync.WaitGroup
	var refreshErrs atomic.Int32
	for i := range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				svc.Rates(context.Background())
				return
			}
			if _, err := svc.Refresh(context.Background()); err != nil {
				refreshErrs.Add(1)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), f.calls.Load())
	assert.Zero(t, refreshErrs.Load())
}
