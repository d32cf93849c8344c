package handler

import (
	"net/http"

	"github.com/pkordes/travelbook/internal/domain"
)

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	TextColor string `json:"text_color"`
	Font      string `json:"font"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []domain.Trip `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.svc.Trips.Create(r.Context(), body.Name, domain.Appearance{
		Color:     body.Color,
		TextColor: body.TextColor,
		Font:      body.Font,
	})
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if !queryParam(w, r, "page", &page) || !queryParam(w, r, "limit", &limit) {
		return
	}
	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.svc.Trips.ListPaged(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, TripList{
		Data:       trips,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	trip, err := s.svc.Trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PATCH /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	var patch domain.TripPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	updated, err := s.svc.Trips.Update(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	if err := s.svc.Trips.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
