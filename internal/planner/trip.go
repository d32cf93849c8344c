// Package planner holds the pure trip, day, note and ledger operations.
// Every function takes values and returns new values: slices of the input
// are never written to, so callers can keep the previous snapshot around and
// only swap it in once the new one has been persisted.
package planner

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travelbook/internal/domain"
)

// CreateTrip builds a new trip with an empty day and note list.
// The name is trimmed and must be unique among existing, ignoring case.
func CreateTrip(existing []domain.Trip, id uuid.UUID, name string, a domain.Appearance) (domain.Trip, error) {
	name, err := ValidateTripName(existing, uuid.Nil, name)
	if err != nil {
		return domain.Trip{}, err
	}
	return domain.Trip{
		ID:         id,
		Name:       name,
		Appearance: a,
		Days:       []domain.Day{},
		Notes:      []domain.Note{},
	}, nil
}

// UpdateTrip applies a rename and appearance change. The trip itself is
// excluded from the duplicate check so a case-only rename is allowed.
func UpdateTrip(existing []domain.Trip, trip domain.Trip, p domain.TripPatch) (domain.Trip, error) {
	out := cloneTrip(trip)
	if p.Name != nil {
		name, err := ValidateTripName(existing, trip.ID, *p.Name)
		if err != nil {
			return domain.Trip{}, err
		}
		out.Name = name
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	if p.TextColor != nil {
		out.TextColor = *p.TextColor
	}
	if p.Font != nil {
		out.Font = *p.Font
	}
	return out, nil
}

// ValidateTripName trims name and checks it against every trip but self.
func ValidateTripName(existing []domain.Trip, self uuid.UUID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrEmptyName
	}
	for _, t := range existing {
		if t.ID != self && strings.EqualFold(strings.TrimSpace(t.Name), name) {
			return "", domain.ErrDuplicateName
		}
	}
	return name, nil
}

// RemoveTrip returns trips without the one with the given id.
func RemoveTrip(trips []domain.Trip, id uuid.UUID) ([]domain.Trip, error) {
	out := make([]domain.Trip, 0, len(trips))
	found := false
	for _, t := range trips {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

// ReplaceTrip returns trips with the trip sharing updated's id swapped out.
func ReplaceTrip(trips []domain.Trip, updated domain.Trip) ([]domain.Trip, error) {
	out := make([]domain.Trip, len(trips))
	copy(out, trips)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
			return out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func cloneTrip(t domain.Trip) domain.Trip {
	out := t
	out.Days = make([]domain.Day, len(t.Days))
	for i, d := range t.Days {
		out.Days[i] = cloneDay(d)
	}
	out.Notes = append([]domain.Note{}, t.Notes...)
	return out
}

func cloneDay(d domain.Day) domain.Day {
	out := d
	out.Transports = append([]domain.Transport{}, d.Transports...)
	out.Activities = append([]domain.Activity{}, d.Activities...)
	return out
}
