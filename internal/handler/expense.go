package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travelbook/internal/domain"
)

// ListExpenses handles GET /trips/{tripID}/expenses/{dayIndex}.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	var day int
	if !pathParam(w, r, "dayIndex", &day) {
		return
	}
	entries, err := s.svc.Expenses.List(r.Context(), id, day)
	if err != nil {
		s.writeError(w, r, err, "day not found")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// AddExpense handles POST /trips/{tripID}/expenses/{dayIndex}/{category}.
// The response holds every category of the day.
func (s *Server) AddExpense(w http.ResponseWriter, r *http.Request) {
	id, day, c, ok := ledgerParams(w, r)
	if !ok {
		return
	}
	var body domain.Expense
	if !decodeBody(w, r, &body) {
		return
	}
	entries, err := s.svc.Expenses.Add(r.Context(), id, day, c, body)
	if err != nil {
		s.writeError(w, r, err, "day not found")
		return
	}
	writeJSON(w, http.StatusCreated, entries)
}

// UpdateExpense handles PATCH /trips/{tripID}/expenses/{dayIndex}/{category}/{entry}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, day, c, ok := ledgerParams(w, r)
	if !ok {
		return
	}
	var entry int
	if !pathParam(w, r, "entry", &entry) {
		return
	}
	var patch domain.ExpensePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	updated, err := s.svc.Expenses.Update(r.Context(), id, day, c, entry, patch)
	if err != nil {
		s.writeError(w, r, err, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// RemoveExpense handles DELETE /trips/{tripID}/expenses/{dayIndex}/{category}/{entry}.
func (s *Server) RemoveExpense(w http.ResponseWriter, r *http.Request) {
	id, day, c, ok := ledgerParams(w, r)
	if !ok {
		return
	}
	var entry int
	if !pathParam(w, r, "entry", &entry) {
		return
	}
	if err := s.svc.Expenses.Remove(r.Context(), id, day, c, entry); err != nil {
		s.writeError(w, r, err, "expense not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ledgerParams binds {tripID}, {dayIndex} and {category}.
func ledgerParams(w http.ResponseWriter, r *http.Request) (id openapi_types.UUID, day int, c domain.Category, ok bool) {
	if id, ok = tripID(w, r); !ok {
		return
	}
	if ok = pathParam(w, r, "dayIndex", &day); !ok {
		return
	}
	var raw string
	if ok = pathParam(w, r, "category", &raw); !ok {
		return
	}
	c, err := domain.ParseCategory(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return id, day, "", false
	}
	return id, day, c, true
}
