package planner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travelbook/internal/currency"
	"github.com/pkordes/travelbook/internal/domain"
)

// NewDayName returns the first placeholder not used by any of days:
// "Nouveau jour", then "Nouveau jour 1", "Nouveau jour 2" and so on.
func NewDayName(days []domain.Day) string {
	taken := make(map[string]bool, len(days))
	for _, d := range days {
		taken[d.Name] = true
	}
	name := domain.DefaultDayName
	for n := 1; taken[name]; n++ {
		name = domain.DefaultDayName + " " + strconv.Itoa(n)
	}
	return name
}

// AddDay appends an empty day dated the day after the last one, or today
// when the trip has no days yet.
func AddDay(trip domain.Trip, id uuid.UUID, today domain.Date) domain.Trip {
	out := cloneTrip(trip)
	date := today
	if n := len(out.Days); n > 0 && !out.Days[n-1].Date.IsZero() {
		date = out.Days[n-1].Date.AddDays(1)
	}
	out.Days = append(out.Days, domain.Day{
		ID:         id,
		Name:       NewDayName(trip.Days),
		Date:       date,
		Transports: []domain.Transport{},
		Activities: []domain.Activity{},
	})
	return out
}

// MoveDay moves the day at from to position to. The trip's start date does
// not change: afterwards the day at position i is dated start+i, where start
// is the date the first day held before the move. A day moved to the front
// therefore takes the old start date rather than keeping its own, and a day
// moved away from the front gives that date up.
func MoveDay(trip domain.Trip, from, to int) (domain.Trip, error) {
	n := len(trip.Days)
	if from < 0 || from >= n || to < 0 || to >= n {
		return domain.Trip{}, fmt.Errorf("%w: day position out of range (have %d days)", domain.ErrValidation, n)
	}
	out := cloneTrip(trip)
	anchor := out.Days[0].Date

	moved := out.Days[from]
	days := append(out.Days[:from:from], out.Days[from+1:]...)
	days = append(days[:to], append([]domain.Day{moved}, days[to:]...)...)
	out.Days = days

	redateFrom(out.Days, anchor)
	return out, nil
}

// DeleteDay removes a day; the remaining days are re-dated consecutively
// from the new first day, which keeps its own date.
func DeleteDay(trip domain.Trip, dayID uuid.UUID) (domain.Trip, int, error) {
	idx := trip.DayIndex(dayID)
	if idx < 0 {
		return domain.Trip{}, -1, fmt.Errorf("day %s: %w", dayID, domain.ErrNotFound)
	}
	out := cloneTrip(trip)
	out.Days = append(out.Days[:idx:idx], out.Days[idx+1:]...)
	if len(out.Days) > 0 {
		redateFrom(out.Days, out.Days[0].Date)
	}
	return out, idx, nil
}

// UpdateDay applies a partial update to one day. A new date re-dates the
// whole trip around the edited day.
func UpdateDay(trip domain.Trip, dayID uuid.UUID, u domain.DayUpdate) (domain.Trip, error) {
	idx := trip.DayIndex(dayID)
	if idx < 0 {
		return domain.Trip{}, fmt.Errorf("day %s: %w", dayID, domain.ErrNotFound)
	}
	out := cloneTrip(trip)
	day := out.Days[idx]

	if u.Name != nil {
		day.Name = strings.TrimSpace(*u.Name)
		if day.Name == "" {
			others := append(out.Days[:idx:idx], out.Days[idx+1:]...)
			day.Name = NewDayName(others)
		}
	}
	if u.Location != nil {
		day.Location = *u.Location
		day.Location.Name = strings.TrimSpace(day.Location.Name)
	}
	if u.Image != nil {
		if err := ValidateImage(*u.Image); err != nil {
			return domain.Trip{}, err
		}
		day.Image = *u.Image
	}
	if u.Currency != nil {
		code := currency.Normalize(*u.Currency)
		if err := currency.Validate(code); err != nil {
			return domain.Trip{}, err
		}
		day.Currency = code
	}
	if u.Accommodation != nil {
		acc, err := mergeAccommodation(day.Accommodation, *u.Accommodation)
		if err != nil {
			return domain.Trip{}, err
		}
		day.Accommodation = acc
	}
	if u.Food != nil {
		food, err := mergeFood(day.Food, *u.Food)
		if err != nil {
			return domain.Trip{}, err
		}
		day.Food = food
	}
	if u.GeneralInfo != nil && u.GeneralInfo.Planning != nil {
		day.GeneralInfo.Planning = *u.GeneralInfo.Planning
	}
	if u.Transports != nil {
		list := make([]domain.Transport, 0, len(*u.Transports))
		seen := make(map[uuid.UUID]bool, len(*u.Transports))
		for _, t := range *u.Transports {
			if seen[t.ID] {
				return domain.Trip{}, fmt.Errorf("%w: duplicate transport id %s", domain.ErrValidation, t.ID)
			}
			seen[t.ID] = true
			norm, err := normalizeTransport(t)
			if err != nil {
				return domain.Trip{}, err
			}
			list = append(list, norm)
		}
		day.Transports = list
	}
	if u.Activities != nil {
		list := make([]domain.Activity, 0, len(*u.Activities))
		seen := make(map[uuid.UUID]bool, len(*u.Activities))
		for _, a := range *u.Activities {
			if seen[a.ID] {
				return domain.Trip{}, fmt.Errorf("%w: duplicate activity id %s", domain.ErrValidation, a.ID)
			}
			seen[a.ID] = true
			norm, err := normalizeActivity(a)
			if err != nil {
				return domain.Trip{}, err
			}
			list = append(list, norm)
		}
		day.Activities = list
	}

	out.Days[idx] = day

	if u.Date != nil {
		if u.Date.IsZero() {
			return domain.Trip{}, fmt.Errorf("%w: date is required", domain.ErrValidation)
		}
		pivotDates(out.Days, idx, *u.Date)
	}
	return out, nil
}

// redateFrom dates each day anchor+position. A zero anchor leaves the days
// untouched.
func redateFrom(days []domain.Day, anchor domain.Date) {
	if anchor.IsZero() {
		return
	}
	for i := range days {
		days[i].Date = anchor.AddDays(i)
	}
}

// pivotDates gives days[idx] the date pivot and dates the others
// consecutively around it.
func pivotDates(days []domain.Day, idx int, pivot domain.Date) {
	for i := range days {
		days[i].Date = pivot.AddDays(i - idx)
	}
}

func mergeAccommodation(a domain.Accommodation, p domain.AccommodationPatch) (domain.Accommodation, error) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		if !p.Type.Valid() {
			return a, fmt.Errorf("%w: unknown accommodation type %q", domain.ErrValidation, *p.Type)
		}
		a.Type = *p.Type
	}
	if p.Reserved != nil {
		a.Reserved = *p.Reserved
	}
	if p.Price != nil {
		if err := p.Price.Validate(); err != nil {
			return a, err
		}
		a.Price = *p.Price
	}
	if p.Currency != nil {
		code, err := validCurrency(*p.Currency)
		if err != nil {
			return a, err
		}
		a.Currency = code
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	if p.URL != nil {
		a.URL = strings.TrimSpace(*p.URL)
	}
	return a, nil
}

func mergeFood(f domain.Food, p domain.FoodPatch) (domain.Food, error) {
	var err error
	if p.Breakfast != nil {
		if f.Breakfast, err = mergeMeal(f.Breakfast, *p.Breakfast); err != nil {
			return f, err
		}
	}
	if p.Lunch != nil {
		if f.Lunch, err = mergeMeal(f.Lunch, *p.Lunch); err != nil {
			return f, err
		}
	}
	if p.Dinner != nil {
		if f.Dinner, err = mergeMeal(f.Dinner, *p.Dinner); err != nil {
			return f, err
		}
	}
	return f, nil
}

func mergeMeal(m domain.Meal, p domain.MealPatch) (domain.Meal, error) {
	if p.Price != nil {
		if err := p.Price.Validate(); err != nil {
			return m, err
		}
		m.Price = *p.Price
	}
	if p.Currency != nil {
		code, err := validCurrency(*p.Currency)
		if err != nil {
			return m, err
		}
		m.Currency = code
	}
	if p.Count != nil {
		if *p.Count < 1 {
			return m, fmt.Errorf("%w: meal count must be at least 1", domain.ErrValidation)
		}
		m.Count = *p.Count
	}
	return m, nil
}

func validCurrency(code string) (string, error) {
	code = currency.Normalize(code)
	if err := currency.Validate(code); err != nil {
		return "", err
	}
	return code, nil
}
