package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/planner"
)

// NoteService implements business logic for trip notes.
type NoteService struct {
	state *State
}

// NewNoteService constructs a NoteService over the shared state.
func NewNoteService(state *State) *NoteService {
	return &NoteService{state: state}
}

// Add appends a note titled "Nouvelle note".
func (s *NoteService) Add(ctx context.Context, tripID uuid.UUID) (domain.Note, error) {
	id := s.state.newID()
	trip, _, err := s.state.MutateTrip(ctx, tripID, func(t domain.Trip, l domain.ExpenseLedger) (domain.Trip, domain.ExpenseLedger, error) {
		return planner.AddNote(t, id), l, nil
	})
	if err != nil {
		return domain.Note{}, fmt.Errorf("service.NoteService.Add: %w", err)
	}
	return trip.Notes[len(trip.Notes)-1], nil
}

// Update overwrites the title and/or content of a note.
func (s *NoteService) Update(ctx context.Context, tripID, noteID uuid.UUID, p domain.NotePatch) (domain.Note, error) {
	trip, _, err := s.state.MutateTrip(ctx, tripID, func(t domain.Trip, l domain.ExpenseLedger) (domain.Trip, domain.ExpenseLedger, error) {
		updated, err := planner.UpdateNote(t, noteID, p)
		return updated, l, err
	})
	if err != nil {
		return domain.Note{}, fmt.Errorf("service.NoteService.Update: %w", err)
	}
	for _, n := range trip.Notes {
		if n.ID == noteID {
			return n, nil
		}
	}
	return domain.Note{}, fmt.Errorf("service.NoteService.Update: note %s: %w", noteID, domain.ErrNotFound)
}

// Delete removes a note.
func (s *NoteService) Delete(ctx context.Context, tripID, noteID uuid.UUID) error {
	_, _, err := s.state.MutateTrip(ctx, tripID, func(t domain.Trip, l domain.ExpenseLedger) (domain.Trip, domain.ExpenseLedger, error) {
		updated, err := planner.DeleteNote(t, noteID)
		return updated, l, err
	})
	if err != nil {
		return fmt.Errorf("service.NoteService.Delete: %w", err)
	}
	return nil
}
