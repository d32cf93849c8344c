package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travelbook/internal/domain"
)

// GetCurrencies handles GET /trips/{tripID}/currencies.
func (s *Server) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	p, err := s.svc.Budget.Preferences(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SetCurrencies handles PUT /trips/{tripID}/currencies.
func (s *Server) SetCurrencies(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	var body domain.CurrencyPreferences
	if !decodeBody(w, r, &body) {
		return
	}
	p, err := s.svc.Budget.SetPreferences(r.Context(), id, body)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetTripBudget handles GET /trips/{tripID}/budget?currency=.
func (s *Server) GetTripBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	target, ok := queryString(w, r, "currency")
	if !ok {
		return
	}
	report, err := s.svc.Budget.Trip(r.Context(), id, target)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetDayBudget handles GET /trips/{tripID}/budget/days/{dayIndex}?currency=.
func (s *Server) GetDayBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	var day int
	if !pathParam(w, r, "dayIndex", &day) {
		return
	}
	target, ok := queryString(w, r, "currency")
	if !ok {
		return
	}
	report, err := s.svc.Budget.Day(r.Context(), id, day, target)
	if err != nil {
		s.writeError(w, r, err, "day not found")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetRates handles GET /rates. It never fails: without any known table the
// body has empty rates.
func (s *Server) GetRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Budget.Rates(r.Context()))
}

// RefreshRates handles POST /rates/refresh. A provider failure is reported
// as 502 since the previous table stays in use.
func (s *Server) RefreshRates(w http.ResponseWriter, r *http.Request) {
	table, err := s.svc.Budget.Refresh(r.Context())
	if err != nil {
		s.logger.WarnContext(r.Context(), "rate refresh failed", "error", err)
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: ErrorDetail{Code: "upstream_error", Message: "exchange rate provider unavailable"}})
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// ConvertAmount handles GET /rates/convert?amount=&from=&to=.
func (s *Server) ConvertAmount(w http.ResponseWriter, r *http.Request) {
	var raw, from, to string
	for name, dst := range map[string]*string{"amount": &raw, "from": &from, "to": &to} {
		v, ok := queryString(w, r, name)
		if !ok {
			return
		}
		*dst = v
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("amount must be a number"))
		return
	}
	result, err := s.svc.Budget.Convert(r.Context(), amount, from, to)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
