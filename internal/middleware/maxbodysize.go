package middleware

import (
	"encoding/json"
	"net/http"
)

// DefaultMaxBodyBytes leaves room for a day image sent inline as a data URL.
const DefaultMaxBodyBytes = 10 << 20

// NewMaxBodySizeHandler returns a middleware that limits incoming request body
// sizes to limit bytes. Requests advertising a larger Content-Length are
// rejected with 413 before reaching the next handler; other bodies are wrapped
// in http.MaxBytesReader so reading past the limit fails. A non-positive
// limit means DefaultMaxBodyBytes.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				//nolint:errcheck
				json.NewEncoder(w).Encode(map[string]map[string]string{
					"error": {"code": "payload_too_large", "message": "request body too large"},
				})
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
