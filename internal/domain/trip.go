// Package domain contains the core data types for the travel planner.
// This package only depends on small value-type libraries (uuid, decimal) and
// is imported by every other internal package (planner, budget, repo, service,
// handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Appearance is how a trip is drawn on the shelf: cover colour, text colour
// and font family. The backend stores it verbatim.
type Appearance struct {
	Color     string `json:"color"`
	TextColor string `json:"text_color"`
	Font      string `json:"font"`
}

// Trip is the top-level planning unit. Days are ordered by position and their
// dates are kept contiguous by the planner; notes are independent of days.
type Trip struct {
	ID uuid.UUID `json:"id"`
	// Name is unique across trips, compared case-insensitively.
	Name string `json:"name"`
	Appearance
	Days      []Day     `json:"days"`
	Notes     []Note    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayIndex returns the position of the day with the given id, or -1.
func (t Trip) DayIndex(id uuid.UUID) int {
	for i, d := range t.Days {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// DateRange returns the first and last day dates. ok is false for a trip
// without days.
func (t Trip) DateRange() (first, last Date, ok bool) {
	if len(t.Days) == 0 {
		return Date{}, Date{}, false
	}
	return t.Days[0].Date, t.Days[len(t.Days)-1].Date, true
}

// Note is a free-form titled text attached to a trip.
type Note struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
}

// NotePatch carries the fields of a note to overwrite. Nil fields are kept.
type NotePatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// TripPatch carries the trip fields to overwrite. Nil fields are kept.
type TripPatch struct {
	Name      *string `json:"name,omitempty"`
	Color     *string `json:"color,omitempty"`
	TextColor *string `json:"text_color,omitempty"`
	Font      *string `json:"font,omitempty"`
}
