package handler

import (
	"io"
	"net/http"

	"github.com/chicktrack-api/internal/application/upload"
	"github.com/chicktrack-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// Uploaded images are capped at 8 MiB.
const maxUploadBytes = 8 << 20

type UploadHandler struct {
	svc upload.Service
}

func NewUploadHandler(svc upload.Service) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload handles POST /uploads as a multipart form with a "file" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form with a file field")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	var uploaderID string
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		uploaderID = claims.Subject
	}

	f, err := h.svc.Upload(r.Context(), upload.Input{
		Reader:     file,
		Filename:   header.Filename,
		Size:       header.Size,
		UploaderID: uploaderID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// Download handles GET /uploads/{id} and streams the stored object.
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	rc, f, err := h.svc.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer rc.Close()
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", `inline; filename="`+f.Name+`"`)
	_, _ = io.Copy(w, rc)
}
