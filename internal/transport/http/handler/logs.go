package handler

import (
	"net/http"

	"github.com/chicktrack-api/internal/application/production"
	"github.com/chicktrack-api/internal/domain"
	"github.com/chicktrack-api/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

type LogHandler struct {
	svc production.Service
}

func NewLogHandler(svc production.Service) *LogHandler {
	return &LogHandler{svc: svc}
}

func (h *LogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	l, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// List supports an optional ?batchCode= filter.
func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.List(r.Context(), r.URL.Query().Get("batchCode"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *LogHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *LogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	l, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *LogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "log deleted"})
}
