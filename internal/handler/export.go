package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/travelbook/internal/service"
)

// ExportTrip handles GET /trips/{tripID}/export?format=html|markdown|json|csv.
// The default format is html.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	raw, ok := queryString(w, r, "format")
	if !ok {
		return
	}
	format, err := service.ParseExportFormat(raw)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	doc, err := s.svc.Export.Export(r.Context(), id, format)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(doc.Body)
}
