package planner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travelbook/internal/domain"
)

// AddTransport appends a transport to a day. Type defaults to car and count
// to 1.
func AddTransport(trip domain.Trip, dayID uuid.UUID, t domain.Transport) (domain.Trip, error) {
	t, err := normalizeTransport(t)
	if err != nil {
		return domain.Trip{}, err
	}
	return withDay(trip, dayID, func(d *domain.Day) error {
		d.Transports = append(d.Transports, t)
		return nil
	})
}

// UpdateTransport merges p into the transport with the given id.
func UpdateTransport(trip domain.Trip, dayID, itemID uuid.UUID, p domain.ItemPatch) (domain.Trip, error) {
	return withDay(trip, dayID, func(d *domain.Day) error {
		for i, t := range d.Transports {
			if t.ID != itemID {
				continue
			}
			if p.Type != nil {
				t.Type = *p.Type
			}
			if err := applyItemPatch(&t.Description, &t.Price, &t.Currency, &t.Count, p); err != nil {
				return err
			}
			norm, err := normalizeTransport(t)
			if err != nil {
				return err
			}
			d.Transports[i] = norm
			return nil
		}
		return fmt.Errorf("transport %s: %w", itemID, domain.ErrNotFound)
	})
}

// RemoveTransport deletes one transport, leaving the others in order.
func RemoveTransport(trip domain.Trip, dayID, itemID uuid.UUID) (domain.Trip, error) {
	return withDay(trip, dayID, func(d *domain.Day) error {
		for i, t := range d.Transports {
			if t.ID == itemID {
				d.Transports = append(d.Transports[:i:i], d.Transports[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("transport %s: %w", itemID, domain.ErrNotFound)
	})
}

// AddActivity appends an activity to a day. Count defaults to 1.
func AddActivity(trip domain.Trip, dayID uuid.UUID, a domain.Activity) (domain.Trip, error) {
	a, err := normalizeActivity(a)
	if err != nil {
		return domain.Trip{}, err
	}
	return withDay(trip, dayID, func(d *domain.Day) error {
		d.Activities = append(d.Activities, a)
		return nil
	})
}

// UpdateActivity merges p into the activity with the given id. p.Type is
// ignored.
func UpdateActivity(trip domain.Trip, dayID, itemID uuid.UUID, p domain.ItemPatch) (domain.Trip, error) {
	return withDay(trip, dayID, func(d *domain.Day) error {
		for i, a := range d.Activities {
			if a.ID != itemID {
				continue
			}
			if err := applyItemPatch(&a.Description, &a.Price, &a.Currency, &a.Count, p); err != nil {
				return err
			}
			norm, err := normalizeActivity(a)
			if err != nil {
				return err
			}
			d.Activities[i] = norm
			return nil
		}
		return fmt.Errorf("activity %s: %w", itemID, domain.ErrNotFound)
	})
}

// RemoveActivity deletes one activity, leaving the others in order.
func RemoveActivity(trip domain.Trip, dayID, itemID uuid.UUID) (domain.Trip, error) {
	return withDay(trip, dayID, func(d *domain.Day) error {
		for i, a := range d.Activities {
			if a.ID == itemID {
				d.Activities = append(d.Activities[:i:i], d.Activities[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("activity %s: %w", itemID, domain.ErrNotFound)
	})
}

// withDay clones trip and lets fn edit the copy of one day.
func withDay(trip domain.Trip, dayID uuid.UUID, fn func(d *domain.Day) error) (domain.Trip, error) {
	idx := trip.DayIndex(dayID)
	if idx < 0 {
		return domain.Trip{}, fmt.Errorf("day %s: %w", dayID, domain.ErrNotFound)
	}
	out := cloneTrip(trip)
	if err := fn(&out.Days[idx]); err != nil {
		return domain.Trip{}, err
	}
	return out, nil
}

func applyItemPatch(desc *string, price *domain.Price, cur *string, count *int, p domain.ItemPatch) error {
	if p.Description != nil {
		*desc = *p.Description
	}
	if p.Price != nil {
		*price = *p.Price
	}
	if p.Currency != nil {
		*cur = *p.Currency
	}
	if p.Count != nil {
		if *p.Count < 1 {
			return fmt.Errorf("%w: count must be at least 1", domain.ErrValidation)
		}
		*count = *p.Count
	}
	return nil
}

func normalizeTransport(t domain.Transport) (domain.Transport, error) {
	if t.ID == uuid.Nil {
		return t, fmt.Errorf("%w: transport id is required", domain.ErrValidation)
	}
	if t.Type == "" {
		t.Type = domain.TransportCar
	}
	if !t.Type.Valid() {
		return t, fmt.Errorf("%w: unknown transport type %q", domain.ErrValidation, t.Type)
	}
	t.Description = strings.TrimSpace(t.Description)
	if t.Count < 1 {
		t.Count = 1
	}
	if err := t.Price.Validate(); err != nil {
		return t, err
	}
	code, err := validCurrency(t.Currency)
	if err != nil {
		return t, err
	}
	t.Currency = code
	return t, nil
}

func normalizeActivity(a domain.Activity) (domain.Activity, error) {
	if a.ID == uuid.Nil {
		return a, fmt.Errorf("%w: activity id is required", domain.ErrValidation)
	}
	a.Description = strings.TrimSpace(a.Description)
	if a.Count < 1 {
		a.Count = 1
	}
	if err := a.Price.Validate(); err != nil {
		return a, err
	}
	code, err := validCurrency(a.Currency)
	if err != nil {
		return a, err
	}
	a.Currency = code
	return a, nil
}
