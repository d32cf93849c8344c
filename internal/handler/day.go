package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travelbook/internal/domain"
)

// MoveDayRequest is the body of POST /trips/{tripID}/days/move.
type MoveDayRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}

// AddDay handles POST /trips/{tripID}/days.
func (s *Server) AddDay(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	day, err := s.svc.Days.Add(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, day)
}

// MoveDay handles POST /trips/{tripID}/days/move. The response is the whole
// re-dated trip.
func (s *Server) MoveDay(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	var body MoveDayRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.From == nil || body.To == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("from and to are required"))
		return
	}
	trip, err := s.svc.Days.Move(r.Context(), id, *body.From, *body.To)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpdateDay handles PATCH /trips/{tripID}/days/{dayID}.
func (s *Server) UpdateDay(w http.ResponseWriter, r *http.Request) {
	tid, did, ok := tripAndDayID(w, r)
	if !ok {
		return
	}
	var u domain.DayUpdate
	if !decodeBody(w, r, &u) {
		return
	}
	trip, err := s.svc.Days.Update(r.Context(), tid, did, u)
	if err != nil {
		s.writeError(w, r, err, "day not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DeleteDay handles DELETE /trips/{tripID}/days/{dayID}.
func (s *Server) DeleteDay(w http.ResponseWriter, r *http.Request) {
	tid, did, ok := tripAndDayID(w, r)
	if !ok {
		return
	}
	trip, err := s.svc.Days.Delete(r.Context(), tid, did)
	if err != nil {
		s.writeError(w, r, err, "day not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// AddTransport handles POST /trips/{tripID}/days/{dayID}/transports.
func (s *Server) AddTransport(w http.ResponseWriter, r *http.Request) {
	tid, did, ok := tripAndDayID(w, r)
	if !ok {
		return
	}
	var body domain.Transport
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.svc.Days.AddTransport(r.Context(), tid, did, body)
	if err != nil {
		s.writeError(w, r, err, "day not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateTransport handles PATCH /trips/{tripID}/days/{dayID}/transports/{itemID}.
func (s *Server) UpdateTransport(w http.ResponseWriter, r *http.Request) {
	tid, did, iid, ok := itemIDs(w, r)
	if !ok {
		return
	}
	var patch domain.ItemPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	updated, err := s.svc.Days.UpdateTransport(r.Context(), tid, did, iid, patch)
	if err != nil {
		s.writeError(w, r, err, "transport not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// RemoveTransport handles DELETE /trips/{tripID}/days/{dayID}/transports/{itemID}.
func (s *Server) RemoveTransport(w http.ResponseWriter, r *http.Request) {
	tid, did, iid, ok := itemIDs(w, r)
	if !ok {
		return
	}
	if err := s.svc.Days.RemoveTransport(r.Context(), tid, did, iid); err != nil {
		s.writeError(w, r, err, "transport not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddActivity handles POST /trips/{tripID}/days/{dayID}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	tid, did, ok := tripAndDayID(w, r)
	if !ok {
		return
	}
	var body domain.Activity
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.svc.Days.AddActivity(r.Context(), tid, did, body)
	if err != nil {
		s.writeError(w, r, err, "day not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateActivity handles PATCH /trips/{tripID}/days/{dayID}/activities/{itemID}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	tid, did, iid, ok := itemIDs(w, r)
	if !ok {
		return
	}
	var patch domain.ItemPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	updated, err := s.svc.Days.UpdateActivity(r.Context(), tid, did, iid, patch)
	if err != nil {
		s.writeError(w, r, err, "activity not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// RemoveActivity handles DELETE /trips/{tripID}/days/{dayID}/activities/{itemID}.
func (s *Server) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	tid, did, iid, ok := itemIDs(w, r)
	if !ok {
		return
	}
	if err := s.svc.Days.RemoveActivity(r.Context(), tid, did, iid); err != nil {
		s.writeError(w, r, err, "activity not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func itemIDs(w http.ResponseWriter, r *http.Request) (trip, day, item openapi_types.UUID, ok bool) {
	if trip, day, ok = tripAndDayID(w, r); !ok {
		return
	}
	ok = pathParam(w, r, "itemID", &item)
	return
}
