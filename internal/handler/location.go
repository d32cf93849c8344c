package handler

import (
	"net/http"

	"github.com/pkordes/travelbook/internal/geocode"
)

// SearchLocations handles GET /locations/search?q=&session=.
// Requests sharing a session id are debounced together; an overtaken request
// gets 409 superseded.
func (s *Server) SearchLocations(w http.ResponseWriter, r *http.Request) {
	q, ok := queryString(w, r, "q")
	if !ok {
		return
	}
	session, ok := queryString(w, r, "session")
	if !ok {
		return
	}
	suggestions, err := s.svc.Locations.Suggest(r.Context(), session, q)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	if suggestions == nil {
		suggestions = []geocode.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}
