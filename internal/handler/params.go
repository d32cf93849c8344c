package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathParam binds a required simple-style path parameter into dest.
func pathParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid path parameter "+name))
		return false
	}
	return true
}

// queryParam binds an optional form-style query parameter. dest must be a
// pointer to a pointer, as for generated optional parameters; it stays nil
// when the parameter is absent.
func queryParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid query parameter "+name))
		return false
	}
	return true
}

// queryString binds an optional string query parameter; absent is "".
func queryString(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	var v *string
	if !queryParam(w, r, name, &v) {
		return "", false
	}
	if v == nil {
		return "", true
	}
	return *v, true
}

// tripID binds {tripID}.
func tripID(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	return id, pathParam(w, r, "tripID", &id)
}

// tripAndDayID binds {tripID} and {dayID}.
func tripAndDayID(w http.ResponseWriter, r *http.Request) (trip, day openapi_types.UUID, ok bool) {
	if trip, ok = tripID(w, r); !ok {
		return
	}
	ok = pathParam(w, r, "dayID", &day)
	return
}
