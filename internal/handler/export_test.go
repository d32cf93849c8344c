package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbook/internal/domain"
	"github.com/pkordes/travelbook/internal/handler"
	"github.com/pkordes/travelbook/internal/service"
)

func TestExportTrip_CSV(t *testing.T) {
	var got service.ExportFormat
	h := newHTTPHandler(handler.Services{Export: &mockExportServicer{
		export: func(_ context.Context, _ uuid.UUID, f service.ExportFormat) (service.Document, error) {
			got = f
			return service.Document{ContentType: "text/csv", Filename: "budget.csv", Body: []byte("trip_id\n")}, nil
		},
	}})

	rec := do(h, http.MethodGet, "/trips/"+uuid.NewString()+"/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.FormatCSV, got)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="budget.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "trip_id\n", rec.Body.String())
}

func TestExportTrip_DefaultsToHTML(t *testing.T) {
	var got service.ExportFormat
	h := newHTTPHandler(handler.Services{Export: &mockExportServicer{
		export: func(_ context.Context, _ uuid.UUID, f service.ExportFormat) (service.Document, error) {
			got = f
			return service.Document{ContentType: "text/html; charset=utf-8", Body: []byte("<h1>x</h1>")}, nil
		},
	}})

	rec := do(h, http.MethodGet, "/trips/"+uuid.NewString()+"/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.FormatHTML, got)
}

func TestExportTrip_422_UnknownFormat(t *testing.T) {
	h := newHTTPHandler(handler.Services{Export: &mockExportServicer{}})

	rec := do(h, http.MethodGet, "/trips/"+uuid.NewString()+"/export?format=pdf", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestExportTrip_404(t *testing.T) {
	h := newHTTPHandler(handler.Services{Export: &mockExportServicer{
		export: func(context.Context, uuid.UUID, service.ExportFormat) (service.Document, error) {
			return service.Document{}, domain.ErrNotFound
		},
	}})

	rec := do(h, http.MethodGet, "/trips/"+uuid.NewString()+"/export?format=json", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
