package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/geocode"
	"github.com/pkordes/travelbook/internal/handler"
	"github.com/pkordes/travelbook/internal/service"
)

// Test doubles for the handler interfaces. Set only the method fields your
// test needs; an unset field panics, which flags an unexpected call.

type mockTripServicer struct {
	create    func(ctx context.Context, name string, a domain.Appearance) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error)
	update    func(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, name string, a domain.Appearance) (domain.Trip, error) {
	return m.create(ctx, name, a)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, id, p)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockDayServicer struct {
	add             func(ctx context.Context, tripID uuid.UUID) (domain.Day, error)
	move            func(ctx context.Context, tripID uuid.UUID, from, to int) (domain.Trip, error)
	update          func(ctx context.Context, tripID, dayID uuid.UUID, u domain.DayUpdate) (domain.Trip, error)
	delete          func(ctx context.Context, tripID, dayID uuid.UUID) (domain.Trip, error)
	addTransport    func(ctx context.Context, tripID, dayID uuid.UUID, t domain.Transport) (domain.Transport, error)
	updateTransport func(ctx context.Context, tripID, dayID, itemID uuid.UUID, p domain.ItemPatch) (domain.Transport, error)
	removeTransport func(ctx context.Context, tripID, dayID, itemID uuid.UUID) error
	addActivity     func(ctx context.Context, tripID, dayID uuid.UUID, a domain.Activity) (domain.Activity, error)
	updateActivity  func(ctx context.Context, tripID, dayID, itemID uuid.UUID, p domain.ItemPatch) (domain.Activity, error)
	removeActivity  func(ctx context.Context, tripID, dayID, itemID uuid.UUID) error
}

func (m *mockDayServicer) Add(ctx context.Context, tripID uuid.UUID) (domain.Day, error) {
	return m.add(ctx, tripID)
}
func (m *mockDayServicer) Move(ctx context.Context, tripID uuid.UUID, from, to int) (domain.Trip, error) {
	return m.move(ctx, tripID, from, to)
}
func (m *mockDayServicer) Update(ctx context.Context, tripID, dayID uuid.UUID, u domain.DayUpdate) (domain.Trip, error) {
	return m.update(ctx, tripID, dayID, u)
}
func (m *mockDayServicer) Delete(ctx context.Context, tripID, dayID uuid.UUID) (domain.Trip, error) {
	return m.delete(ctx, tripID, dayID)
}
func (m *mockDayServicer) AddTransport(ctx context.Context, tripID, dayID uuid.UUID, t domain.Transport) (domain.Transport, error) {
	return m.addTransport(ctx, tripID, dayID, t)
}
func (m *mockDayServicer) UpdateTransport(ctx context.Context, tripID, dayID, itemID uuid.UUID, p domain.ItemPatch) (domain.Transport, error) {
	return m.updateTransport(ctx, tripID, dayID, itemID, p)
}
func (m *mockDayServicer) RemoveTransport(ctx context.Context, tripID, dayID, itemID uuid.UUID) error {
	return m.removeTransport(ctx, tripID, dayID, itemID)
}
func (m *mockDayServicer) AddActivity(ctx context.Context, tripID, dayID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	return m.addActivity(ctx, tripID, dayID, a)
}
func (m *mockDayServicer) UpdateActivity(ctx context.Context, tripID, dayID, itemID uuid.UUID, p domain.ItemPatch) (domain.Activity, error) {
	return m.updateActivity(ctx, tripID, dayID, itemID, p)
}
func (m *mockDayServicer) RemoveActivity(ctx context.Context, tripID, dayID, itemID uuid.UUID) error {
	return m.removeActivity(ctx, tripID, dayID, itemID)
}

var _ handler.DayServicer = (*mockDayServicer)(nil)

type mockNoteServicer struct {
	add    func(ctx context.Context, tripID uuid.UUID) (domain.Note, error)
	update func(ctx context.Context, tripID, noteID uuid.UUID, p domain.NotePatch) (domain.Note, error)
	delete func(ctx context.Context, tripID, noteID uuid.UUID) error
}

func (m *mockNoteServicer) Add(ctx context.Context, tripID uuid.UUID) (domain.Note, error) {
	return m.add(ctx, tripID)
}
func (m *mockNoteServicer) Update(ctx context.Context, tripID, noteID uuid.UUID, p domain.NotePatch) (domain.Note, error) {
	return m.update(ctx, tripID, noteID, p)
}
func (m *mockNoteServicer) Delete(ctx context.Context, tripID, noteID uuid.UUID) error {
	return m.delete(ctx, tripID, noteID)
}

var _ handler.NoteServicer = (*mockNoteServicer)(nil)

type mockExpenseServicer struct {
	list   func(ctx context.Context, tripID uuid.UUID, dayIndex int) (domain.DayExpenses, error)
	add    func(ctx context.Context, tripID uuid.UUID, dayIndex int, c domain.Category, e domain.Expense) (domain.DayExpenses, error)
	update func(ctx context.Context, tripID uuid.UUID, dayIndex int, c domain.Category, entry int, p domain.ExpensePatch) (domain.Expense, error)
	remove func(ctx context.Context, tripID uuid.UUID, dayIndex int, c domain.Category, entry int) error
}

func (m *mockExpenseServicer) List(ctx context.Context, tripID uuid.UUID, dayIndex int) (domain.DayExpenses, error) {
	return m.list(ctx, tripID, dayIndex)
}
func (m *mockExpenseServicer) Add(ctx context.Context, tripID uuid.UUID, dayIndex int, c domain.Category, e domain.Expense) (domain.DayExpenses, error) {
	return m.add(ctx, tripID, dayIndex, c, e)
}
func (m *mockExpenseServicer) Update(ctx context.Context, tripID uuid.UUID, dayIndex int, c domain.Category, entry int, p domain.ExpensePatch) (domain.Expense, error) {
	return m.update(ctx, tripID, dayIndex, c, entry, p)
}
func (m *mockExpenseServicer) Remove(ctx context.Context, tripID uuid.UUID, dayIndex int, c domain.Category, entry int) error {
	return m.remove(ctx, tripID, dayIndex, c, entry)
}

var _ handler.ExpenseServicer = (*mockExpenseServicer)(nil)

type mockBudgetServicer struct {
	preferences    func(ctx context.Context, tripID uuid.UUID) (domain.CurrencyPreferences, error)
	setPreferences func(ctx context.Context, tripID uuid.UUID, p domain.CurrencyPreferences) (domain.CurrencyPreferences, error)
	trip           func(ctx context.Context, tripID uuid.UUID, target string) (service.BudgetReport, error)
	day            func(ctx context.Context, tripID uuid.UUID, dayIndex int, target string) (service.BudgetReport, error)
	rates          func(ctx context.Context) domain.RateTable
	refresh        func(ctx context.Context) (domain.RateTable, error)
	convert        func(ctx context.Context, amount decimal.Decimal, from, to string) (service.Conversion, error)
}

func (m *mockBudgetServicer) Preferences(ctx context.Context, tripID uuid.UUID) (domain.CurrencyPreferences, error) {
	return m.preferences(ctx, tripID)
}
func (m *mockBudgetServicer) SetPreferences(ctx context.Context, tripID uuid.UUID, p domain.CurrencyPreferences) (domain.CurrencyPreferences, error) {
	return m.setPreferences(ctx, tripID, p)
}
func (m *mockBudgetServicer) Trip(ctx context.Context, tripID uuid.UUID, target string) (service.BudgetReport, error) {
	return m.trip(ctx, tripID, target)
}
func (m *mockBudgetServicer) Day(ctx context.Context, tripID uuid.UUID, dayIndex int, target string) (service.BudgetReport, error) {
	return m.day(ctx, tripID, dayIndex, target)
}
func (m *mockBudgetServicer) Rates(ctx context.Context) domain.RateTable {
	return m.rates(ctx)
}
func (m *mockBudgetServicer) Refresh(ctx context.Context) (domain.RateTable, error) {
	return m.refresh(ctx)
}
func (m *mockBudgetServicer) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (service.Conversion, error) {
	return m.convert(ctx, amount, from, to)
}

var _ handler.BudgetServicer = (*mockBudgetServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, tripID uuid.UUID, format service.ExportFormat) (service.Document, error)
}

func (m *mockExportServicer) Export(ctx context.Context, tripID uuid.UUID, format service.ExportFormat) (service.Document, error) {
	return m.export(ctx, tripID, format)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

type mockLocationSearcher struct {
	suggest func(ctx context.Context, session, query string) ([]geocode.Suggestion, error)
}

func (m *mockLocationSearcher) Suggest(ctx context.Context, session, query string) ([]geocode.Suggestion, error) {
	return m.suggest(ctx, session, query)
}

var _ handler.LocationSearcher = (*mockLocationSearcher)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the chi router,
// the way main.go does in production. Trips is always set so the nested
// trip routes are registered.
func newHTTPHandler(svc handler.Services) http.Handler {
	if svc.Trips == nil {
		svc.Trips = &mockTripServicer{}
	}
	return handler.NewServer(svc, nil).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}
