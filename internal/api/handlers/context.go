package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"mobility-context-service/internal/api/dto"
	"mobility-context-service/internal/domain"
	"mobility-context-service/internal/platform/obs"
	"mobility-context-service/internal/services"
)

type ContextBuilder interface {
	Build(ctx context.Context, req services.BuildRequest) (*domain.ContextPackage, error)
	Ask(ctx context.Context, req services.AskRequest) (services.AskResult, error)
}

type LastPackageReader interface {
	LastPackage() (*domain.ContextPackage, error)
}

type ContextHandler struct {
	Builder ContextBuilder
	State   LastPackageReader
}

// Last returns the most recently built package, or null before the first build.
func (h *ContextHandler) Last(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	pkg, err := h.State.LastPackage()
	if err != nil {
		log.Printf("req_id=%s read last package failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, pkg)
}

// Build assembles a context package for a calendar event or an explicit destination.
func (h *ContextHandler) Build(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.BuildContextRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.UseNextEvent == nil {
		writeError(w, r, http.StatusBadRequest, "use_next_event is required")
		return
	}
	buffer, ok := bufferMinutes(req.BufferMinutes)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "buffer_minutes must be >= 0")
		return
	}

	pkg, err := h.Builder.Build(r.Context(), services.BuildRequest{
		UseNextEvent:  *req.UseNextEvent,
		Query:         dto.Value(req.Query),
		Origin:        dto.Value(req.Origin),
		Destination:   dto.Value(req.Destination),
		ArrivalISO:    dto.Value(req.ArrivalTimeISO),
		BufferMinutes: buffer,
		City:          dto.Value(req.City),
	})
	if err != nil {
		writeBuildError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, pkg)
}

// Ask answers a question about reaching the next calendar event.
func (h *ContextHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.AskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	question := strings.TrimSpace(dto.Value(req.Question))
	if question == "" {
		writeError(w, r, http.StatusBadRequest, "question is required")
		return
	}
	buffer, ok := bufferMinutes(req.BufferMinutes)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "buffer_minutes must be >= 0")
		return
	}

	res, err := h.Builder.Ask(r.Context(), services.AskRequest{
		Question:      question,
		Origin:        dto.Value(req.Origin),
		BufferMinutes: buffer,
	})
	if err != nil {
		writeBuildError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AskResponse{Answer: res.Answer, Context: res.Context})
}
