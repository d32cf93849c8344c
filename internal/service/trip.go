package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/planner"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	state *State
}

// NewTripService constructs a TripService over the shared state.
func NewTripService(state *State) *TripService {
	return &TripService{state: state}
}

// Create validates and persists a new trip.
// Returns domain.ErrEmptyName or domain.ErrDuplicateName (both wrap
// domain.ErrValidation) for a rejected name.
func (s *TripService) Create(ctx context.Context, name string, a domain.Appearance) (domain.Trip, error) {
	var created domain.Trip
	_, err := s.state.Mutate(ctx, func(snap domain.Snapshot) (domain.Snapshot, error) {
		trip, err := planner.CreateTrip(snap.Trips, s.state.newID(), name, a)
		if err != nil {
			return domain.Snapshot{}, err
		}
		now := s.state.now().UTC()
		trip.CreatedAt, trip.UpdatedAt = now, now
		created = trip
		snap.Trips = append(append([]domain.Trip{}, snap.Trips...), trip)
		return snap, nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, _, err := s.state.Trip(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trips in creation order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	snap, err := s.state.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if snap.Trips == nil {
		return []domain.Trip{}, nil
	}
	return snap.Trips, nil
}

// ListPaged returns one page of trips and the total count.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	start, end := p.Bounds(len(all))
	return all[start:end], len(all), nil
}

// Update renames a trip or changes its appearance.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	var updated domain.Trip
	_, err := s.state.Mutate(ctx, func(snap domain.Snapshot) (domain.Snapshot, error) {
		trip, _, err := snap.TripByID(id)
		if err != nil {
			return domain.Snapshot{}, err
		}
		updated, err = planner.UpdateTrip(snap.Trips, trip, patch)
		if err != nil {
			return domain.Snapshot{}, err
		}
		updated.UpdatedAt = s.state.now().UTC()
		snap.Trips, err = planner.ReplaceTrip(snap.Trips, updated)
		return snap, err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip with its days, notes, ledger entries and currency
// preferences.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.state.Mutate(ctx, func(snap domain.Snapshot) (domain.Snapshot, error) {
		trips, err := planner.RemoveTrip(snap.Trips, id)
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("trip %s: %w", id, err)
		}
		return domain.Snapshot{Trips: trips, Expenses: planner.DropTrip(snap.Expenses, id)}, nil
	}, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}
