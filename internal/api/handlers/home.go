package handlers

import (
	"net/http"
	"strings"

	"mobility-context-service/internal/api/dto"
)

type HomeStore interface {
	SetHomeAddress(address string)
}

type HomeHandler struct {
	State HomeStore
}

// SetHome replaces the runtime home address used as the default origin.
func (h *HomeHandler) SetHome(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SetHomeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	address := strings.TrimSpace(dto.Value(req.Address))
	if address == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	h.State.SetHomeAddress(address)
	writeJSON(w, r, http.StatusOK, dto.SetHomeResponse{OK: true, HomeAddress: address})
}
