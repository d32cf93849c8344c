package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode"

	"github.com/google/uuid"

	"github.com/pkordes/travelbook/internal/budget"
	"github.com/pkordes/travelbook/internal/currency"
	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/export"
)

// ExportFormat selects the rendering of an exported trip.
type ExportFormat string

const (
	FormatHTML     ExportFormat = "html"
	FormatMarkdown ExportFormat = "markdown"
	FormatJSON     ExportFormat = "json"
	FormatCSV      ExportFormat = "csv"
)

// ParseExportFormat defaults to HTML for an empty value.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(s); f {
	case "":
		return FormatHTML, nil
	case FormatHTML, FormatMarkdown, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", domain.ErrValidation, s)
}

// Document is a rendered export ready to be sent to a client.
type Document struct {
	ContentType string
	Filename    string
	Body        []byte
}

// ExportService renders trips as cover pages or flat budget tables.
type ExportService struct {
	state   *State
	prefs   PreferenceStore
	rates   RateProvider
	capture export.MapCapturer
	logger  *slog.Logger
}

// NewExportService constructs an ExportService. capture may be nil, in which
// case cover pages have no map.
func NewExportService(state *State, prefs PreferenceStore, rates RateProvider, capture export.MapCapturer, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{state: state, prefs: prefs, rates: rates, capture: capture, logger: logger}
}

// Cover builds the cover summary of a trip. A map that cannot be captured
// is logged and left out.
func (s *ExportService) Cover(ctx context.Context, tripID uuid.UUID) (domain.CoverSummary, error) {
	trip, _, err := s.state.Trip(ctx, tripID)
	if err != nil {
		return domain.CoverSummary{}, fmt.Errorf("service.ExportService.Cover: %w", err)
	}
	return export.Cover(trip, s.mapImage(ctx, trip)), nil
}

// Rows returns the flat budget table of a trip in its display currency.
func (s *ExportService) Rows(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, ledger, err := s.state.Trip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Rows: %w", err)
	}
	p, err := s.prefs.Get(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Rows: %w", err)
	}
	table := s.rates.Rates(ctx)
	return export.BudgetRows(trip, ledger, budget.Pricing{
		Input:  p.Input,
		Target: currency.OrPivot(p.Display),
		Rates:  table.Rates,
	}), nil
}

// Export renders a trip in the requested format.
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID, format ExportFormat) (Document, error) {
	switch format {
	case FormatHTML, FormatMarkdown:
		cover, err := s.Cover(ctx, tripID)
		if err != nil {
			return Document{}, err
		}
		if format == FormatMarkdown {
			return Document{
				ContentType: "text/markdown; charset=utf-8",
				Filename:    filename(cover.TripName, "md"),
				Body:        export.Markdown(cover),
			}, nil
		}
		body, err := export.HTML(cover)
		if err != nil {
			return Document{}, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		return Document{ContentType: "text/html; charset=utf-8", Filename: filename(cover.TripName, "html"), Body: body}, nil

	case FormatJSON, FormatCSV:
		rows, err := s.Rows(ctx, tripID)
		if err != nil {
			return Document{}, err
		}
		var buf bytes.Buffer
		doc := Document{ContentType: "application/json", Filename: "budget.json"}
		if format == FormatCSV {
			doc = Document{ContentType: "text/csv", Filename: "budget.csv"}
			err = export.WriteCSV(&buf, rows)
		} else {
			err = export.WriteJSON(&buf, rows)
		}
		if err != nil {
			return Document{}, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		doc.Body = buf.Bytes()
		return doc, nil
	}
	return Document{}, fmt.Errorf("service.ExportService.Export: %w: unknown format %q", domain.ErrValidation, format)
}

func (s *ExportService) mapImage(ctx context.Context, trip domain.Trip) []byte {
	if s.capture == nil {
		return nil
	}
	img, err := s.capture.Capture(ctx, trip)
	switch {
	case errors.Is(err, export.ErrNoCoordinates):
		return nil
	case err != nil:
		s.logger.WarnContext(ctx, "map capture failed, exporting without map",
			"trip_id", trip.ID, "error", err)
		return nil
	}
	return img
}

// filename derives a download name from the trip name, keeping letters,
// digits and dashes.
func filename(name, ext string) string {
	var b []rune
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b = append(b, r)
		case r == ' ':
			b = append(b, '-')
		}
	}
	if len(b) == 0 {
		return "voyage." + ext
	}
	return string(b) + "." + ext
}
