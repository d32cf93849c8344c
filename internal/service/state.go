// Package service contains the business logic for the travel planner API.
// Services validate inputs, run the pure planner operations and persist the
// result. No SQL lives here: services depend on store interfaces, not
// implementations.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/planner"
)

// StateStore is the persistence port for the whole planner state.
type StateStore interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	// Save writes the snapshot atomically and forgets the preferences of
	// the dropped trips.
	Save(ctx context.Context, snap domain.Snapshot, dropped ...uuid.UUID) error
}

// State serialises every mutation: load, apply a pure planner operation,
// save. A failed operation or save leaves the stored state untouched.
type State struct {
	store StateStore
	now   func() time.Time
	newID func() uuid.UUID

	mu sync.Mutex
}

// StateOption customises a State.
type StateOption func(*State)

// WithClock replaces time.Now, which decides "today" for new days and the
// trip timestamps.
func WithClock(now func() time.Time) StateOption {
	return func(s *State) { s.now = now }
}

// WithIDs replaces uuid.New.
func WithIDs(newID func() uuid.UUID) StateOption {
	return func(s *State) { s.newID = newID }
}

// NewState constructs a State over store.
func NewState(store StateStore, opts ...StateOption) *State {
	s := &State{store: store, now: time.Now, newID: uuid.New}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current persisted state.
func (s *State) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load(ctx)
}

// Trip returns one trip from the current state.
func (s *State) Trip(ctx context.Context, id uuid.UUID) (domain.Trip, domain.ExpenseLedger, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Trip{}, nil, err
	}
	trip, _, err := snap.TripByID(id)
	if err != nil {
		return domain.Trip{}, nil, err
	}
	return trip, snap.Expenses, nil
}

// Mutate runs fn on the current snapshot and persists what it returns.
func (s *State) Mutate(ctx context.Context, fn func(domain.Snapshot) (domain.Snapshot, error), dropped ...uuid.UUID) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	next, err := fn(snap)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := s.store.Save(ctx, next, dropped...); err != nil {
		return domain.Snapshot{}, err
	}
	return next, nil
}

// MutateTrip runs fn on one trip and the ledger, stamps UpdatedAt and
// persists both.
func (s *State) MutateTrip(ctx context.Context, tripID uuid.UUID, fn func(domain.Trip, domain.ExpenseLedger) (domain.Trip, domain.ExpenseLedger, error)) (domain.Trip, domain.ExpenseLedger, error) {
	var (
		updated domain.Trip
		ledger  domain.ExpenseLedger
	)
	_, err := s.Mutate(ctx, func(snap domain.Snapshot) (domain.Snapshot, error) {
		trip, _, err := snap.TripByID(tripID)
		if err != nil {
			return domain.Snapshot{}, err
		}
		updated, ledger, err = fn(trip, snap.Expenses)
		if err != nil {
			return domain.Snapshot{}, err
		}
		updated.UpdatedAt = s.now().UTC()
		trips, err := planner.ReplaceTrip(snap.Trips, updated)
		if err != nil {
			return domain.Snapshot{}, err
		}
		return domain.Snapshot{Trips: trips, Expenses: ledger}, nil
	})
	if err != nil {
		return domain.Trip{}, nil, err
	}
	return updated, ledger, nil
}

// today is the current calendar day.
func (s *State) today() domain.Date {
	return domain.DateOf(s.now())
}
