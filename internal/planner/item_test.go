package planner_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/planner"
)

func TestAddTransport_Defaults(t *testing.T) {
	trip := tripWithDays(t, 1)

	got, err := planner.AddTransport(trip, trip.Days[0].ID, domain.Transport{ID: uuid.New()})

	require.NoError(t, err)
	tr := got.Days[0].Transports[0]
	assert.Equal(t, domain.TransportCar, tr.Type)
	assert.Equal(t, 1, tr.Count)
	assert.False(t, tr.Price.Valid)
	assert.Empty(t, trip.Days[0].Transports, "input must not be mutated")
}

func TestAddTransport_UnknownType(t *testing.T) {
	trip := tripWithDays(t, 1)

	_, err := planner.AddTransport(trip, trip.Days[0].ID, domain.Transport{ID: uuid.New(), Type: "rocket"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateTransport_ClearPriceAndRejectZeroCount(t *testing.T) {
	trip := tripWithDays(t, 1)
	dayID, itemID := trip.Days[0].ID, uuid.New()
	trip, err := planner.AddTransport(trip, dayID, domain.Transport{
		ID: itemID, Type: domain.TransportPlane, Price: domain.PriceOf(300), Count: 2,
	})
	require.NoError(t, err)

	got, err := planner.UpdateTransport(trip, dayID, itemID, domain.ItemPatch{Price: &domain.NoPrice})
	require.NoError(t, err)
	assert.False(t, got.Days[0].Transports[0].Price.Valid)
	assert.Equal(t, 2, got.Days[0].Transports[0].Count)
	assert.Equal(t, domain.TransportPlane, got.Days[0].Transports[0].Type)

	_, err = planner.UpdateTransport(trip, dayID, itemID, domain.ItemPatch{Count: ptr(0)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = planner.UpdateTransport(trip, dayID, uuid.New(), domain.ItemPatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveTransport_KeepsOthersInOrder(t *testing.T) {
	trip := tripWithDays(t, 1)
	dayID := trip.Days[0].ID
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		var err error
		trip, err = planner.AddTransport(trip, dayID, domain.Transport{ID: id})
		require.NoError(t, err)
	}

	got, err := planner.RemoveTransport(trip, dayID, ids[1])

	require.NoError(t, err)
	require.Len(t, got.Days[0].Transports, 2)
	assert.Equal(t, ids[0], got.Days[0].Transports[0].ID)
	assert.Equal(t, ids[2], got.Days[0].Transports[1].ID)
	assert.Len(t, trip.Days[0].Transports, 3)
}

func TestActivities_CRUD(t *testing.T) {
	trip := tripWithDays(t, 1)
	dayID, itemID := trip.Days[0].ID, uuid.New()

	trip, err := planner.AddActivity(trip, dayID, domain.Activity{ID: itemID, Description: " Musée "})
	require.NoError(t, err)
	assert.Equal(t, "Musée", trip.Days[0].Activities[0].Description)

	trip, err = planner.UpdateActivity(trip, dayID, itemID, domain.ItemPatch{
		Price:    ptr(domain.PriceOf(15)),
		Currency: ptr("usd"),
		Count:    ptr(3),
	})
	require.NoError(t, err)
	act := trip.Days[0].Activities[0]
	assert.Equal(t, "USD", act.Currency)
	assert.Equal(t, 3, act.Count)

	trip, err = planner.RemoveActivity(trip, dayID, itemID)
	require.NoError(t, err)
	assert.Empty(t, trip.Days[0].Activities)

	_, err = planner.RemoveActivity(trip, dayID, itemID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItems_UnknownDay(t *testing.T) {
	trip := tripWithDays(t, 1)

	_, err := planner.AddActivity(trip, uuid.New(), domain.Activity{ID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- notes -----------------------------------------------------------------

func TestNotes(t *testing.T) {
	trip := tripWithDays(t, 0)
	noteID := uuid.New()

	trip = planner.AddNote(trip, noteID)
	require.Len(t, trip.Notes, 1)
	assert.Equal(t, "Nouvelle note", trip.Notes[0].Title)

	trip, err := planner.UpdateNote(trip, noteID, domain.NotePatch{Content: ptr("Passeport")})
	require.NoError(t, err)
	assert.Equal(t, "Nouvelle note", trip.Notes[0].Title)
	assert.Equal(t, "Passeport", trip.Notes[0].Content)

	trip, err = planner.DeleteNote(trip, noteID)
	require.NoError(t, err)
	assert.Empty(t, trip.Notes)

	_, err = planner.UpdateNote(trip, noteID, domain.NotePatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
