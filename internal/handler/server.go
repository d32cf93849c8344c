// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server. Routes are registered on a chi router
// in Routes; path and query parameters are bound with the oapi-codegen
// runtime so they follow the styles declared in spec/openapi.yaml.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/geocode"
	"github.com/pkordes/travelbook/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage or the service layer.
type TripServicer interface {
	Create(ctx context.Context, name string, a domain.Appearance) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DayServicer defines the day, transport and activity operations.
type DayServicer interface {
	Add(ctx context.Context, tripID uuid.UUID) (domain.Day, error)
	Move(ctx context.Context, tripID uuid.UUID, from, to int) (domain.Trip, error)
	Update(ctx context.Context, tripID, dayID uuid.UUID, u domain.DayUpdate) (domain.Trip, error)
	Delete(ctx context.Context, tripID, dayID uuid.UUID) (domain.Trip, error)

	AddTransport(ctx context.Context, tripID, dayID uuid.UUID, t domain.Transport) (domain.Transport, error)
	UpdateTransport(ctx context.Context, tripID, dayID, itemID uuid.UUID, p domain.ItemPatch) (domain.Transport, error)
	RemoveTransport(ctx context.Context, tripID, dayID, itemID uuid.UUID) error

	AddActivity(ctx context.Context, tripID, dayID uuid.UUID, a domain.Activity) (domain.Activity, error)
	UpdateActivity(ctx context.Context, tripID, dayID, itemID uuid.UUID, p domain.ItemPatch) (domain.Activity, error)
	RemoveActivity(ctx context.Context, tripID, dayID, itemID uuid.UUID) error
}

// NoteServicer defines the note operations.
type NoteServicer interface {
	Add(ctx context.Context, tripID uuid.UUID) (domain.Note, error)
	Update(ctx context.Context, tripID, noteID uuid.UUID, p domain.NotePatch) (domain.Note, error)
	Delete(ctx context.Context, tripID, noteID uuid.UUID) error
}

// ExpenseServicer defines the actual-expense ledger operations.
type ExpenseServicer interface {
	List(ctx context.Context, tripID uuid.UUID, dayIndex int) (domain.DayExpenses, error)
	Add(ctx context.Context, tripID uuid.UUID, dayIndex int, c domain.Category, e domain.Expense) (domain.DayExpenses, error)
	Update(ctx context.Context, tripID uuid.UUID, dayIndex int, c domain.Category, entry int, p domain.ExpensePatch) (domain.Expense, error)
	Remove(ctx context.Context, tripID uuid.UUID, dayIndex int, c domain.Category, entry int) error
}

// BudgetServicer defines the budget, preference and rate operations.
type BudgetServicer interface {
	Preferences(ctx context.Context, tripID uuid.UUID) (domain.CurrencyPreferences, error)
	SetPreferences(ctx context.Context, tripID uuid.UUID, p domain.CurrencyPreferences) (domain.CurrencyPreferences, error)
	Trip(ctx context.Context, tripID uuid.UUID, target string) (service.BudgetReport, error)
	Day(ctx context.Context, tripID uuid.UUID, dayIndex int, target string) (service.BudgetReport, error)
	Rates(ctx context.Context) domain.RateTable
	Refresh(ctx context.Context) (domain.RateTable, error)
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (service.Conversion, error)
}

// ExportServicer renders a trip for download.
type ExportServicer interface {
	Export(ctx context.Context, tripID uuid.UUID, format service.ExportFormat) (service.Document, error)
}

// LocationSearcher returns place suggestions for a search session.
type LocationSearcher interface {
	Suggest(ctx context.Context, session, query string) ([]geocode.Suggestion, error)
}

// Services groups the dependencies of Server. Nil members leave their
// routes unregistered.
type Services struct {
	Trips     TripServicer
	Days      DayServicer
	Notes     NoteServicer
	Expenses  ExpenseServicer
	Budget    BudgetServicer
	Export    ExportServicer
	Locations LocationSearcher
}

// Server holds the handler dependencies. Methods are in domain-specific
// files but all operate on this struct.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{svc: svc, logger: logger}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Services{}, nil)
}

// Routes returns the API router. Middleware is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	if s.svc.Trips != nil {
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Patch("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)

				if s.svc.Days != nil {
					r.Post("/days", s.AddDay)
					r.Post("/days/move", s.MoveDay)
					r.Route("/days/{dayID}", func(r chi.Router) {
						r.Patch("/", s.UpdateDay)
						r.Delete("/", s.DeleteDay)
						r.Post("/transports", s.AddTransport)
						r.Patch("/transports/{itemID}", s.UpdateTransport)
						r.Delete("/transports/{itemID}", s.RemoveTransport)
						r.Post("/activities", s.AddActivity)
						r.Patch("/activities/{itemID}", s.UpdateActivity)
						r.Delete("/activities/{itemID}", s.RemoveActivity)
					})
				}
				if s.svc.Notes != nil {
					r.Post("/notes", s.AddNote)
					r.Patch("/notes/{noteID}", s.UpdateNote)
					r.Delete("/notes/{noteID}", s.DeleteNote)
				}
				if s.svc.Expenses != nil {
					r.Get("/expenses/{dayIndex}", s.ListExpenses)
					r.Post("/expenses/{dayIndex}/{category}", s.AddExpense)
					r.Patch("/expenses/{dayIndex}/{category}/{entry}", s.UpdateExpense)
					r.Delete("/expenses/{dayIndex}/{category}/{entry}", s.RemoveExpense)
				}
				if s.svc.Budget != nil {
					r.Get("/currencies", s.GetCurrencies)
					r.Put("/currencies", s.SetCurrencies)
					r.Get("/budget", s.GetTripBudget)
					r.Get("/budget/days/{dayIndex}", s.GetDayBudget)
				}
				if s.svc.Export != nil {
					r.Get("/export", s.ExportTrip)
				}
			})
		})
	}
	if s.svc.Budget != nil {
		r.Get("/rates", s.GetRates)
		r.Post("/rates/refresh", s.RefreshRates)
		r.Get("/rates/convert", s.ConvertAmount)
	}
	if s.svc.Locations != nil {
		r.Get("/locations/search", s.SearchLocations)
	}
	return r
}
