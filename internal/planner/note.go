package planner

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelbook/internal/domain"
)

// DefaultNoteTitle is the title of a freshly added note.
const DefaultNoteTitle = "Nouvelle note"

// AddNote appends an empty note to the trip.
func AddNote(trip domain.Trip, id uuid.UUID) domain.Trip {
	out := cloneTrip(trip)
	out.Notes = append(out.Notes, domain.Note{ID: id, Title: DefaultNoteTitle})
	return out
}

// UpdateNote overwrites the non-nil fields of a note.
func UpdateNote(trip domain.Trip, noteID uuid.UUID, p domain.NotePatch) (domain.Trip, error) {
	out := cloneTrip(trip)
	for i := range out.Notes {
		if out.Notes[i].ID != noteID {
			continue
		}
		if p.Title != nil {
			out.Notes[i].Title = *p.Title
		}
		if p.Content != nil {
			out.Notes[i].Content = *p.Content
		}
		return out, nil
	}
	return domain.Trip{}, fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
}

// DeleteNote removes a note.
func DeleteNote(trip domain.Trip, noteID uuid.UUID) (domain.Trip, error) {
	out := cloneTrip(trip)
	for i, n := range out.Notes {
		if n.ID == noteID {
			out.Notes = append(out.Notes[:i:i], out.Notes[i+1:]...)
			return out, nil
		}
	}
	return domain.Trip{}, fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
}
