package handler

import (
	"errors"
	"net/http"

	"github.com/chicktrack-api/internal/application/auth"
	"github.com/chicktrack-api/internal/application/user"
	"github.com/chicktrack-api/internal/domain"
	"github.com/chicktrack-api/internal/pkg/validate"
	"github.com/chicktrack-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	users user.Service
	auth  auth.Service
}

func NewUserHandler(users user.Service, authSvc auth.Service) *UserHandler {
	return &UserHandler{users: users, auth: authSvc}
}

// Upsert handles POST /users/register, the passwordless create-or-refresh
// endpoint.
func (h *UserHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, created, err := h.users.Upsert(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, u)
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := h.users.Get(r.Context(), claims.Subject)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// SetTwoFA handles POST /users/{id}/twofa. The path id must match the
// bearer token subject.
func (h *UserHandler) SetTwoFA(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID := chi.URLParam(r, "id")
	if userID != claims.Subject {
		writeError(w, http.StatusForbidden, "cannot change 2FA for another user")
		return
	}
	var req domain.TwoFARequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	u, err := h.auth.SetTwoFA(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, auth.ErrTwoFAPhoneInvalid) {
			writeError(w, http.StatusBadRequest, "a valid E.164 phone is required to enable 2FA")
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":   true,
		"user": u,
	})
}
