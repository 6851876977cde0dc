package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"mobility-context-service/internal/platform/obs"
	"mobility-context-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: req_id=%s method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// allowMethod writes a 405 with an Allow header when r.Method is not method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// decodeJSON strictly decodes exactly one JSON object into dst.
// Unknown fields and trailing data are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func bufferMinutes(p *int) (int, bool) {
	if p == nil {
		return services.DefaultBufferMinutes, true
	}
	return *p, *p >= 0
}

// writeBuildError maps orchestrator failures to HTTP statuses.
func writeBuildError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrMissingDestination):
		writeError(w, r, http.StatusBadRequest, services.ErrMissingDestination.Error())
	case errors.Is(err, services.ErrMissingOrigin):
		writeError(w, r, http.StatusBadRequest, services.ErrMissingOrigin.Error())
	case errors.Is(err, services.ErrGeocodeFailed):
		writeError(w, r, http.StatusBadRequest, services.ErrGeocodeFailed.Error())
	case errors.Is(err, services.ErrNoRoutes):
		writeError(w, r, http.StatusBadGateway, services.ErrNoRoutes.Error())
	default:
		log.Printf("req_id=%s build context failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusBadGateway, "upstream service failure")
	}
}
