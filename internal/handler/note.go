package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travelbook/internal/domain"
)

// AddNote handles POST /trips/{tripID}/notes.
func (s *Server) AddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	note, err := s.svc.Notes.Add(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PATCH /trips/{tripID}/notes/{noteID}.
func (s *Server) UpdateNote(w http.ResponseWriter, r *http.Request) {
	tid, nid, ok := noteIDs(w, r)
	if !ok {
		return
	}
	var patch domain.NotePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	note, err := s.svc.Notes.Update(r.Context(), tid, nid, patch)
	if err != nil {
		s.writeError(w, r, err, "note not found")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /trips/{tripID}/notes/{noteID}.
func (s *Server) DeleteNote(w http.ResponseWriter, r *http.Request) {
	tid, nid, ok := noteIDs(w, r)
	if !ok {
		return
	}
	if err := s.svc.Notes.Delete(r.Context(), tid, nid); err != nil {
		s.writeError(w, r, err, "note not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func noteIDs(w http.ResponseWriter, r *http.Request) (trip, note openapi_types.UUID, ok bool) {
	if trip, ok = tripID(w, r); !ok {
		return
	}
	ok = pathParam(w, r, "noteID", &note)
	return
}
