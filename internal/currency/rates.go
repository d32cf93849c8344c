package currency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/pkordes/travelbook/internal/domain"
)

// DefaultTTL is how long a fetched rate table is considered fresh.
const DefaultTTL = 24 * time.Hour

// ErrNoRates is returned when a fetch yields no allow-listed currency.
var ErrNoRates = errors.New("no supported exchange rates in response")

// Fetcher retrieves the latest units-per-pivot rates from a provider.
type Fetcher interface {
	Fetch(ctx context.Context) (map[string]decimal.Decimal, error)
}

// Store persists the last fetched rate table.
// LoadRates returns domain.ErrNotFound when nothing has been stored yet.
type Store interface {
	LoadRates(ctx context.Context) (domain.RateTable, error)
	SaveRates(ctx context.Context, table domain.RateTable) error
}

// RateService serves the rate table, refreshing it from the Fetcher once it
// is older than the TTL. Concurrent refreshes share a single fetch.
type RateService struct {
	fetcher Fetcher
	store   Store
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger

	group singleflight.Group

	mu     sync.RWMutex
	cached domain.RateTable
}

// RateServiceOption customises a RateService.
type RateServiceOption func(*RateService)

// WithClock replaces time.Now, which lets tests age the cache.
func WithClock(now func() time.Time) RateServiceOption {
	return func(s *RateService) { s.now = now }
}

// WithLogger sets the logger used for degraded-mode warnings.
func WithLogger(l *slog.Logger) RateServiceOption {
	return func(s *RateService) { s.logger = l }
}

// NewRateService constructs a RateService. A non-positive ttl means DefaultTTL.
func NewRateService(f Fetcher, st Store, ttl time.Duration, opts ...RateServiceOption) *RateService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &RateService{
		fetcher: f,
		store:   st,
		ttl:     ttl,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rates returns a usable rate table. It never fails: when the provider is
// unreachable it serves the last known table whatever its age, and an empty
// table when there is none.
func (s *RateService) Rates(ctx context.Context) domain.RateTable {
	if cur := s.current(); s.fresh(cur) {
		return cur
	}

	v, _, _ := s.group.Do("rates", func() (any, error) {
		return s.load(context.WithoutCancel(ctx)), nil
	})
	return v.(domain.RateTable)
}

// Refresh fetches a new table regardless of the cache age.
func (s *RateService) Refresh(ctx context.Context) (domain.RateTable, error) {
	t, err := s.fetch(ctx)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("currency.RateService.Refresh: %w", err)
	}
	return t, nil
}

func (s *RateService) load(ctx context.Context) domain.RateTable {
	if cur := s.current(); s.fresh(cur) {
		return cur
	}

	fallback := s.current()
	stored, err := s.store.LoadRates(ctx)
	switch {
	case err == nil && s.fresh(stored):
		s.set(stored)
		return stored
	case err == nil && fallback.Empty():
		fallback = stored
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		s.logger.Warn("load stored exchange rates", "error", err)
	}

	table, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("exchange rate refresh failed, serving last known rates",
			"error", err,
			"rates", len(fallback.Rates),
			"fetched_at", fallback.FetchedAt,
		)
		return fallback
	}
	return table
}

// fetch is shared by Rates and Refresh: callers that overlap wait for one
// upstream request.
func (s *RateService) fetch(ctx context.Context) (domain.RateTable, error) {
	v, err, _ := s.group.Do("fetch", func() (any, error) {
		return s.fetchOnce(context.WithoutCancel(ctx))
	})
	if err != nil {
		return domain.RateTable{}, err
	}
	return v.(domain.RateTable), nil
}

func (s *RateService) fetchOnce(ctx context.Context) (domain.RateTable, error) {
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return domain.RateTable{}, err
	}

	rates := make(map[string]decimal.Decimal, len(Codes))
	for code, r := range raw {
		if IsSupported(code) {
			rates[code] = r
		}
	}
	if len(rates) == 0 {
		return domain.RateTable{}, ErrNoRates
	}

	table := domain.RateTable{Rates: rates, FetchedAt: s.now()}
	if err := s.store.SaveRates(ctx, table); err != nil {
		s.logger.Warn("persist exchange rates", "error", err)
	}
	s.set(table)
	return table, nil
}

func (s *RateService) fresh(t domain.RateTable) bool {
	return !t.Empty() && s.now().Sub(t.FetchedAt) < s.ttl
}

func (s *RateService) current() domain.RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}

func (s *RateService) set(t domain.RateTable) {
	s.mu.Lock()
	s.cached = t
	s.mu.Unlock()
}
