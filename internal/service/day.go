package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/planner"
)

// DayService implements business logic for days and their transports and
// activities. Moving or deleting a day re-keys the trip's ledger so actual
// expenses stay attached to their day.
type DayService struct {
	state *State
}

// NewDayService constructs a DayService over the shared state.
func NewDayService(state *State) *DayService {
	return &DayService{state: state}
}

// Add appends a day dated after the last one, or today for an empty trip.
func (s *DayService) Add(ctx context.Context, tripID uuid.UUID) (domain.Day, error) {
	trip, _, err := s.state.MutateTrip(ctx, tripID, func(t domain.Trip, l domain.ExpenseLedger) (domain.Trip, domain.ExpenseLedger, error) {
		return planner.AddDay(t, s.state.newID(), s.state.today()), l, nil
	})
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.DayService.Add: %w", err)
	}
	return trip.Days[len(trip.Days)-1], nil
}

// Move reorders a day and returns the re-dated trip.
func (s *DayService) Move(ctx context.Context, tripID uuid.UUID, from, to int) (domain.Trip, error) {
	trip, _, err := s.state.MutateTrip(ctx, tripID, func(t domain.Trip, l domain.ExpenseLedger) (domain.Trip, domain.ExpenseLedger, error) {
		moved, err := planner.MoveDay(t, from, to)
		if err != nil {
			return domain.Trip{}, nil, err
		}
		return moved, planner.MoveLedgerDay(l, t.ID, from, to, len(t.Days)), nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.DayService.Move: %w", err)
	}
	return trip, nil
}

// Update applies a partial update. The whole trip is returned because a
// date change re-dates every other day.
func (s *DayService) Update(ctx context.Context, tripID, dayID uuid.UUID, u domain.DayUpdate) (domain.Trip, error) {
	assignItemIDs(&u, s.state.newID)
	trip, _, err := s.state.MutateTrip(ctx, tripID, func(t domain.Trip, l domain.ExpenseLedger) (domain.Trip, domain.ExpenseLedger, error) {
		updated, err := planner.UpdateDay(t, dayID, u)
		return updated, l, err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.DayService.Update: %w", err)
	}
	return trip, nil
}

// Delete removes a day and its ledger entries.
func (s *DayService) Delete(ctx context.Context, tripID, dayID uuid.UUID) (domain.Trip, error) {
	trip, _, err := s.state.MutateTrip(ctx, tripID, func(t domain.Trip, l domain.ExpenseLedger) (domain.Trip, domain.ExpenseLedger, error) {
		remaining, idx, err := planner.DeleteDay(t, dayID)
		if err != nil {
			return domain.Trip{}, nil, err
		}
		return remaining, planner.DeleteLedgerDay(l, t.ID, idx), nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.DayService.Delete: %w", err)
	}
	return trip, nil
}

// AddTransport appends a transport with a fresh id.
func (s *DayService) AddTransport(ctx context.Context, tripID, dayID uuid.UUID, tr domain.Transport) (domain.Transport, error) {
	tr.ID = s.state.newID()
	trip, err := s.mutateDay(ctx, tripID, func(t domain.Trip) (domain.Trip, error) {
		return planner.AddTransport(t, dayID, tr)
	})
	if err != nil {
		return domain.Transport{}, fmt.Errorf("service.DayService.AddTransport: %w", err)
	}
	return findTransport(trip, dayID, tr.ID)
}

// UpdateTransport merges a patch into one transport.
func (s *DayService) UpdateTransport(ctx context.Context, tripID, dayID, itemID uuid.UUID, p domain.ItemPatch) (domain.Transport, error) {
	trip, err := s.mutateDay(ctx, tripID, func(t domain.Trip) (domain.Trip, error) {
		return planner.UpdateTransport(t, dayID, itemID, p)
	})
	if err != nil {
		return domain.Transport{}, fmt.Errorf("service.DayService.UpdateTransport: %w", err)
	}
	return findTransport(trip, dayID, itemID)
}

// RemoveTransport deletes one transport.
func (s *DayService) RemoveTransport(ctx context.Context, tripID, dayID, itemID uuid.UUID) error {
	_, err := s.mutateDay(ctx, tripID, func(t domain.Trip) (domain.Trip, error) {
		return planner.RemoveTransport(t, dayID, itemID)
	})
	if err != nil {
		return fmt.Errorf("service.DayService.RemoveTransport: %w", err)
	}
	return nil
}

// AddActivity appends an activity with a fresh id.
func (s *DayService) AddActivity(ctx context.Context, tripID, dayID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	a.ID = s.state.newID()
	trip, err := s.mutateDay(ctx, tripID, func(t domain.Trip) (domain.Trip, error) {
		return planner.AddActivity(t, dayID, a)
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.DayService.AddActivity: %w", err)
	}
	return findActivity(trip, dayID, a.ID)
}

// UpdateActivity merges a patch into one activity.
func (s *DayService) UpdateActivity(ctx context.Context, tripID, dayID, itemID uuid.UUID, p domain.ItemPatch) (domain.Activity, error) {
	trip, err := s.mutateDay(ctx, tripID, func(t domain.Trip) (domain.Trip, error) {
		return planner.UpdateActivity(t, dayID, itemID, p)
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.DayService.UpdateActivity: %w", err)
	}
	return findActivity(trip, dayID, itemID)
}

// RemoveActivity deletes one activity.
func (s *DayService) RemoveActivity(ctx context.Context, tripID, dayID, itemID uuid.UUID) error {
	_, err := s.mutateDay(ctx, tripID, func(t domain.Trip) (domain.Trip, error) {
		return planner.RemoveActivity(t, dayID, itemID)
	})
	if err != nil {
		return fmt.Errorf("service.DayService.RemoveActivity: %w", err)
	}
	return nil
}

func (s *DayService) mutateDay(ctx context.Context, tripID uuid.UUID, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error) {
	trip, _, err := s.state.MutateTrip(ctx, tripID, func(t domain.Trip, l domain.ExpenseLedger) (domain.Trip, domain.ExpenseLedger, error) {
		updated, err := fn(t)
		return updated, l, err
	})
	return trip, err
}

// assignItemIDs gives replacement list entries without an id a fresh one.
func assignItemIDs(u *domain.DayUpdate, newID func() uuid.UUID) {
	if u.Transports != nil {
		list := append([]domain.Transport{}, *u.Transports...)
		for i := range list {
			if list[i].ID == uuid.Nil {
				list[i].ID = newID()
			}
		}
		u.Transports = &list
	}
	if u.Activities != nil {
		list := append([]domain.Activity{}, *u.Activities...)
		for i := range list {
			if list[i].ID == uuid.Nil {
				list[i].ID = newID()
			}
		}
		u.Activities = &list
	}
}

func findTransport(trip domain.Trip, dayID, itemID uuid.UUID) (domain.Transport, error) {
	if idx := trip.DayIndex(dayID); idx >= 0 {
		for _, t := range trip.Days[idx].Transports {
			if t.ID == itemID {
				return t, nil
			}
		}
	}
	return domain.Transport{}, fmt.Errorf("transport %s: %w", itemID, domain.ErrNotFound)
}

func findActivity(trip domain.Trip, dayID, itemID uuid.UUID) (domain.Activity, error) {
	if idx := trip.DayIndex(dayID); idx >= 0 {
		for _, a := range trip.Days[idx].Activities {
			if a.ID == itemID {
				return a, nil
			}
		}
	}
	return domain.Activity{}, fmt.Errorf("activity %s: %w", itemID, domain.ErrNotFound)
}
