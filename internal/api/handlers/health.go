package handlers

import (
	"net/http"

	"mobility-context-service/internal/api/dto"
)

type HealthHandler struct {
	MockMode bool
}

// Health provides a minimal liveness check endpoint.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.HealthResponse{Status: "ok", MockMode: h.MockMode})
}
