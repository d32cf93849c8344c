package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/service"
)

func TestNoteService_Lifecycle(t *testing.T) {
	st, _ := newState(t)
	ctx := context.Background()
	trip := seedTrip(t, st, "Paris", 0)
	svc := service.NewNoteService(st)

	note, err := svc.Add(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nouvelle note", note.Title)
	assert.Empty(t, note.Content)

	updated, err := svc.Update(ctx, trip.ID, note.ID, domain.NotePatch{Content: ptr("Passeports")})
	require.NoError(t, err)
	assert.Equal(t, "Nouvelle note", updated.Title)
	assert.Equal(t, "Passeports", updated.Content)

	require.NoError(t, svc.Delete(ctx, trip.ID, note.ID))
	got, err := service.NewTripService(st).GetByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Notes)
}

func TestNoteService_Update_UnknownNote(t *testing.T) {
	st, _ := newState(t)
	trip := seedTrip(t, st, "Paris", 0)

	_, err := service.NewNoteService(st).Update(context.Background(), trip.ID, uuid.New(), domain.NotePatch{Title: ptr("x")})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestNoteService_Add_UnknownTrip(t *testing.T) {
	st, _ := newState(t)
	_, err := service.NewNoteService(st).Add(context.Background(), uuid.New())

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
